package omnigen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/omnigen/omni/equality"
	"github.com/broady/omnigen/omni/transform"
)

func TestDefaultOptionsValid(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string][]string
		check   func(t *testing.T, o Options)
		wantErr bool
	}{
		{
			name:   "empty keeps defaults",
			values: map[string][]string{},
			check: func(t *testing.T, o Options) {
				assert.Equal(t, DefaultOptions(), o)
			},
		},
		{
			name: "overrides",
			values: map[string][]string{
				"generify_types":           {"false"},
				"primitive_generification": {"abort"},
				"swap_max_depth":           {"3"},
				"elevate_min_level":        {"SEMANTICS_MAX"},
				"deduplicate":              {"true"},
			},
			check: func(t *testing.T, o Options) {
				assert.False(t, o.GenerifyTypes)
				assert.True(t, o.CompressPropertiesToAncestor)
				assert.Equal(t, "abort", o.PrimitiveGenerification)
				assert.Equal(t, 3, o.SwapMaxDepth)
				assert.True(t, o.Deduplicate)
			},
		},
		{name: "bad policy", values: map[string][]string{"primitive_generification": {"inline"}}, wantErr: true},
		{name: "depth too large", values: map[string][]string{"swap_max_depth": {"65"}}, wantErr: true},
		{name: "depth not a number", values: map[string][]string{"swap_max_depth": {"deep"}}, wantErr: true},
		{name: "bad level", values: map[string][]string{"elevate_min_level": {"ALMOST"}}, wantErr: true},
		{name: "unknown key", values: map[string][]string{"frobnicate": {"1"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptions(tt.values)
			if tt.wantErr {
				require.Error(t, err)
				var e *Error
				require.True(t, errors.As(err, &e))
				assert.Equal(t, CodeInvalidOptions, e.Code)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestOptionsToTransform(t *testing.T) {
	o := DefaultOptions()
	o.ElevateMinLevel = "CLONE"
	o.PrimitiveGenerification = "specialize"

	got := o.toTransform()
	assert.Equal(t, equality.CloneMin, got.ElevateMinLevel)
	assert.Equal(t, transform.PrimitiveSpecialize, got.PrimitiveGenerification)
	assert.Equal(t, 10, got.SwapMaxDepth)
	assert.True(t, got.GenerifyTypes)
}

func TestOptionsWithKeepsBase(t *testing.T) {
	base := DefaultOptions()
	base.Deduplicate = true
	base.SwapMaxDepth = 5

	got, err := base.With(map[string][]string{"generify_types": {"false"}})
	require.NoError(t, err)
	assert.True(t, got.Deduplicate)
	assert.Equal(t, 5, got.SwapMaxDepth)
	assert.False(t, got.GenerifyTypes)
	assert.True(t, base.GenerifyTypes, "receiver is not modified")
}
