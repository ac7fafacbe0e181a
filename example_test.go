package uid_test

import (
	"fmt"
	"time"

	"github.com/lmousom/uid"
)

func ExampleNew() {
	epoch := func() time.Time { return time.Unix(0, 0).UTC() }
	zeroSeed := func(p []byte) error {
		clear(p)
		return nil
	}

	g, err := uid.New(
		uid.WithNode(make([]byte, uid.NodeSize)),
		uid.WithTimeSource(epoch),
		uid.WithRandomSource(zeroSeed),
	)
	if err != nil {
		panic(err)
	}

	buf := make([]byte, uid.MinSize)
	if err := g.Fill(buf); err != nil {
		panic(err)
	}
	fmt.Printf("%x\n", buf)
	// Output: 00000000000000000000000000000001
}

func ExampleGenerator_Fill() {
	g := uid.MustNew()

	buf := make([]byte, uid.MaxSize)
	if err := g.Fill(buf); err != nil {
		panic(err)
	}
	fmt.Println(len(buf))
	// Output: 32
}

func ExampleNext() {
	first := uid.MustNext()
	second := uid.MustNext()

	fmt.Println(first.Less(second))
	// Output: true
}
