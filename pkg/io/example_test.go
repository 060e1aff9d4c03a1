package io_test

import (
	"fmt"
	"strings"

	graphio "github.com/matzehuels/graphplot/pkg/io"
)

func ExampleReadEdgeList() {
	adj, err := graphio.ReadEdgeList(strings.NewReader("0 1\n1 2 4\n"))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	n, _ := adj.Dims()
	fmt.Println(n, adj.At(2, 1))
	// Output: 3 4
}

func ExampleReadMatrixJSON() {
	adj, err := graphio.ReadMatrixJSON(strings.NewReader(`{"n": 2, "edges": [{"from": 0, "to": 1, "weight": 2}]}`))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(adj.At(0, 1), adj.At(1, 0))
	// Output: 2 2
}
