package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Code  string `json:"code" validate:"required,max=5"`
	Label string `json:"label" validate:"required,min=2"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestValidateStruct_UsesJSONNamesInFieldOrder(t *testing.T) {
	errs := ValidateStruct(&sample{Count: -1})
	require.Len(t, errs, 3)
	assert.Equal(t, "code", errs[0].FailedField)
	assert.Equal(t, "label", errs[1].FailedField)
	assert.Equal(t, "count", errs[2].FailedField)
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.Empty(t, ValidateStruct(&sample{Code: "A1", Label: "ok"}))
	assert.Nil(t, First(ValidateStruct(&sample{Code: "A1", Label: "ok"})))
}

func TestFirst_Messages(t *testing.T) {
	tests := []struct {
		name string
		in   sample
		want string
	}{
		{name: "required", in: sample{}, want: "code is required"},
		{name: "max string", in: sample{Code: "toolong", Label: "ok"}, want: "code must be at most 5 characters"},
		{name: "min string", in: sample{Code: "A1", Label: "x"}, want: "label must be at least 2 characters"},
		{name: "gte", in: sample{Code: "A1", Label: "ok", Count: -3}, want: "count must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := First(ValidateStruct(&tt.in))
			require.NotNil(t, verr)
			assert.Equal(t, tt.want, verr.Message)
			assert.Equal(t, tt.want, verr.Error())
		})
	}
}

func TestDecodeFields(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      sample
		wantTypes []string
	}{
		{
			name: "exact keys only",
			body: `{"code":"A1","LABEL":"ignored","count":2,"extra":true}`,
			want: sample{Code: "A1", Count: 2},
		},
		{
			name: "null is absent",
			body: `{"code":null,"label":"ok"}`,
			want: sample{Label: "ok"},
		},
		{
			name:      "type errors keep decoding",
			body:      `{"count":"five","code":12,"label":"ok"}`,
			want:      sample{Label: "ok"},
			wantTypes: []string{"code", "count"},
		},
		{
			name:      "fraction for integer",
			body:      `{"count":2.5}`,
			wantTypes: []string{"count"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			errs, err := DecodeFields([]byte(tt.body), &got, json.Unmarshal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			fields := []string{}
			for _, e := range errs {
				assert.Equal(t, TagType, e.Tag)
				fields = append(fields, e.FailedField)
			}
			assert.ElementsMatch(t, append([]string{}, tt.wantTypes...), fields)
		})
	}
}

func TestDecodeFields_NotAnObject(t *testing.T) {
	for _, body := range []string{`{"code":`, ``, `[1,2]`, `"text"`} {
		var s sample
		_, err := DecodeFields([]byte(body), &s, json.Unmarshal)
		assert.Error(t, err, body)
	}
}

func TestFirstInOrder_IgnoresKeyOrder(t *testing.T) {
	for _, body := range []string{
		`{"count":"y","code":7}`,
		`{"code":7,"count":"y"}`,
	} {
		var s sample
		typeErrs, err := DecodeFields([]byte(body), &s, json.Unmarshal)
		require.NoError(t, err)

		verr := FirstInOrder(&s, typeErrs, ValidateStruct(&s))
		require.NotNil(t, verr, body)
		assert.Equal(t, "code must be a string", verr.Message, body)
	}

	// A missing earlier field outranks a type error on a later one.
	var s sample
	typeErrs, err := DecodeFields([]byte(`{"count":"five"}`), &s, json.Unmarshal)
	require.NoError(t, err)
	verr := FirstInOrder(&s, typeErrs, ValidateStruct(&s))
	require.NotNil(t, verr)
	assert.Equal(t, "code is required", verr.Message)

	assert.Nil(t, FirstInOrder(&sample{}, nil, nil))
}
