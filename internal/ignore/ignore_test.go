package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIgnored(t *testing.T) {
	checker := NewChecker([]string{"Noise.Example", " lists.example "}, []string{"Robot@Example.com"}, nil)

	tests := []struct {
		name   string
		sender string
		want   bool
	}{
		{name: "ignored domain", sender: "anyone@noise.example", want: true},
		{name: "ignored domain with surrounding spaces in config", sender: "digest@lists.example", want: true},
		{name: "ignored address", sender: "robot@example.com", want: true},
		{name: "same domain different address passes", sender: "human@example.com", want: false},
		{name: "unrelated sender", sender: "alice@other.example", want: false},
		{name: "no domain part", sender: "weird-string", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checker.IsIgnored(tt.sender))
		})
	}
}

func TestIsIgnored_EmptyChecker(t *testing.T) {
	checker := NewChecker(nil, nil, nil)
	assert.False(t, checker.IsIgnored("anyone@anywhere.example"))
}
