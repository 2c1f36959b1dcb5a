package carousel_test

import (
	"testing"

	"jetset_booking/internal/carousel"
)

func TestCursor_WrapsBothWays(t *testing.T) {
	c := carousel.New([]string{"a", "b", "c"})

	c.Prev()
	if img, _ := c.Current(); img != "c" {
		t.Fatalf("prev from 0: %s", img)
	}
	c.Next()
	if c.Index() != 0 {
		t.Fatalf("next from last: %d", c.Index())
	}
	for i := 0; i < 7; i++ {
		c.Next()
	}
	if c.Index() != 1 {
		t.Fatalf("index=%d", c.Index())
	}
}

func TestCursor_Empty(t *testing.T) {
	c := carousel.New(nil)
	c.Next()
	c.Prev()
	if c.Index() != 0 {
		t.Fatalf("index=%d", c.Index())
	}
	if _, ok := c.Current(); ok {
		t.Fatalf("empty cursor must report no image")
	}
}
