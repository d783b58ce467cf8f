package lang_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ardnew/asciimath/lang"
)

func Example() {
	root, err := lang.Parse("3 + 4 * 2 / (1 - 5)^2^3")
	if err != nil {
		fmt.Println(err)

		return
	}

	v, _ := root.Eval()
	fmt.Printf("%s = %.6f\n", root, v)
	// Output: 3+4*2/(1-5)^2^3 = 3.000122
}

func ExampleParse_scope() {
	scope := lang.NewScope()
	scope.SetNumber("r", 2)
	scope.SetNumber("height", 10)

	root, err := lang.Parse("2r^2 + max(r, 3) + height", lang.WithScope(scope))
	if err != nil {
		fmt.Println(err)

		return
	}

	v, _ := root.Eval()
	fmt.Println(v)
	// Output: 21
}

func ExampleScope_SetFunction() {
	scope := lang.NewScope()
	scope.SetFunction("hypot", func(args []float64) (float64, error) {
		if len(args) != 2 {
			return 0, lang.ErrParamCountMismatch.Detail("hypot")
		}

		return args[0]*args[0] + args[1]*args[1], nil
	})

	root, _ := lang.Parse("sqrt(hypot(3, 4))", lang.WithScope(scope))

	v, _ := root.Eval()
	fmt.Println(v)

	_, err := lang.Parse("hypot(1)", lang.WithScope(scope))
	fmt.Println(err)

	root, _ = lang.Parse("hypot(1)", lang.WithScope(scope))
	_, err = root.Eval()
	fmt.Println(err)
	// Output:
	// 5
	// <nil>
	// parameter count mismatch: hypot
}

func ExampleRoot_Print() {
	root, _ := lang.Parse("2x + sin(30)")

	_ = root.Print(os.Stdout)
	// Output:
	// operator +
	//   operator *
	//     number 2
	//     variable x
	//   function sin
	//     number 30
}

func ExampleLoadDefs() {
	scope := lang.NewScope()

	err := lang.LoadDefs(context.Background(), strings.NewReader("a: 3\nb: a^2 + 1"), scope)
	if err != nil {
		fmt.Println(err)

		return
	}

	for name := range scope.Names() {
		v, _ := scope.GetVar(name)
		fmt.Println(name, v)
	}
	// Output:
	// a 3
	// b 10
}
