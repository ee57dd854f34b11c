package main

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"lfichef/internal/config"
	"lfichef/internal/mutate"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation error",
			err:  config.Validationf("bad traversal range"),
			want: exitValidation,
		},
		{
			name: "wrapped validation error",
			err:  fmt.Errorf("while parsing: %w", config.Validationf("bad drive")),
			want: exitValidation,
		},
		{
			name: "expansion cap",
			err:  fmt.Errorf("%w: line too big", mutate.ErrExpansionCap),
			want: exitValidation,
		},
		{
			name: "path error",
			err:  &os.PathError{Op: "open", Path: "/nope", Err: os.ErrNotExist},
			want: exitIO,
		},
		{
			name: "anything else",
			err:  fmt.Errorf("boom"),
			want: exitInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
