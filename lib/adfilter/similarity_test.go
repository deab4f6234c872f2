package adfilter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
		delta    float64
	}{
		{name: "identical", a: "spam message", b: "spam message", expected: 1.0, delta: 0},
		{name: "both empty", a: "", b: "", expected: 1.0, delta: 0},
		{name: "one empty", a: "text", b: "", expected: 0.0, delta: 0},
		{name: "case folded", a: "Buy NOW", b: "buy now", expected: 1.0, delta: 0},
		{name: "close variants", a: "free gift", b: "free g1ft", expected: 0.89, delta: 0.01},
		{name: "unrelated", a: "hello there", b: "加微信", expected: 0.0, delta: 0.01},
		{name: "chinese identical", a: "赚钱项目", b: "赚钱项目", expected: 1.0, delta: 0},
		{name: "chinese spaced", a: "加 微 信", b: "加微信", expected: 0.75, delta: 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delta == 0 {
				assert.Equal(t, tt.expected, similarity(tt.a, tt.b))
				return
			}
			assert.InDelta(t, tt.expected, similarity(tt.a, tt.b), tt.delta)
		})
	}
}

func TestSimilarity_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"click here for a free gift", "free gift"},
		{"", "something"},
		{"加微信 赚钱项目", "赚钱项目"},
		{"abc", "cba"},
	}
	for i, p := range pairs {
		t.Run(fmt.Sprintf("pair-%d", i), func(t *testing.T) {
			assert.InDelta(t, similarity(p[0], p[1]), similarity(p[1], p[0]), 1e-9)
		})
	}
}

func TestSimilarity_SelfIsOne(t *testing.T) {
	for _, s := range []string{"a", "hello world", "提奔驰 开宝马", "🚀🚀🚀", "Mixed 中文 text"} {
		assert.Equal(t, 1.0, similarity(s, s), "self similarity for %q", s)
	}
}
