package shastina_test

import (
	"fmt"
	"strings"

	"github.com/jacoelho/shastina"
)

func ExampleReader() {
	src := `%shastina; "hello" |;`
	reader, err := shastina.NewReader(strings.NewReader(src))
	if err != nil {
		fmt.Println(err)
		return
	}
	for {
		tok, err := reader.Next()
		if err != nil {
			code, line := reader.Status()
			fmt.Printf("error %v at line %d\n", code, line)
			return
		}
		switch tok.Kind {
		case shastina.Simple:
			fmt.Printf("simple %s\n", tok.Prefix)
		case shastina.String:
			fmt.Printf("string %q\n", tok.Text)
		case shastina.Final:
			fmt.Println("end of input")
			return
		}
	}
	// Output:
	// simple %
	// simple shastina
	// simple ;
	// string "hello"
	// end of input
}
