package suffixindex_test

import (
	"fmt"

	"github.com/viniciusth/suffixindex"
)

func ExampleSuffixIndex_Index() {
	idx, err := suffixindex.New([]string{"Hello world Hello", "Fellow", "Yellow", "Hero"})
	if err != nil {
		panic(err)
	}

	fmt.Println(idx.Match("ello"))
	for _, o := range idx.Index("ello") {
		fmt.Printf("%q at %d\n", idx.Word(o.StringID), o.Position)
	}
	// Output:
	// [Hello world Hello Fellow Yellow]
	// "Hello world Hello" at 13
	// "Hello world Hello" at 1
	// "Fellow" at 1
	// "Yellow" at 1
}

func ExampleBuilder() {
	idx, err := suffixindex.NewBuilder([]string{"Apple", "pineapple", "grape"}).FoldCase().Build()
	if err != nil {
		panic(err)
	}

	fmt.Println(idx.MatchKStrings("APP", 1) != nil, len(idx.Match("APP")))
	fmt.Println(idx.Rank("a"), idx.Len())
	// Output:
	// true 2
	// 3 22
}
