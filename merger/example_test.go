package merger_test

import (
	"fmt"

	"github.com/erraggy/apitestgen/merger"
	"github.com/erraggy/apitestgen/splitter"
)

func ExampleMerge() {
	split, err := splitter.SplitBytes([]byte(`
openapi: 3.0.3
paths:
  /users:
    get: {summary: List users}
  /users/{id}:
    get: {summary: Get user}
    delete: {summary: Delete user}
`))
	if err != nil {
		panic(err)
	}

	merged, err := merger.Merge(split.Units)
	if err != nil {
		panic(err)
	}
	for _, u := range merged.Units {
		fmt.Println(u)
	}
	fmt.Printf("path units: %d -> %d\n", merged.Stats.PathUnitsIn, merged.Stats.PathUnitsOut)
	// Output:
	// path /users
	// verb GET /users
	// verb GET /users/{id}
	// verb DELETE /users/{id}
	// path units: 2 -> 1
}
