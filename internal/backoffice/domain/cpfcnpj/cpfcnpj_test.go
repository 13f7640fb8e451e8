package cpfcnpj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finledger/internal/backoffice/domain/cpfcnpj"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "valid CPF with separators", value: "529.982.247-25", want: true},
		{name: "valid CPF bare digits", value: "52998224725", want: true},
		{name: "valid CPF alternate", value: "111.444.777-35", want: true},
		{name: "CPF with wrong first check digit", value: "529.982.247-35", want: false},
		{name: "CPF with wrong second check digit", value: "529.982.247-24", want: false},
		{name: "CPF of repeated digits", value: "111.111.111-11", want: false},
		{name: "valid CNPJ with separators", value: "11.222.333/0001-81", want: true},
		{name: "valid CNPJ bare digits", value: "11222333000181", want: true},
		{name: "CNPJ with wrong check digit", value: "11.222.333/0001-82", want: false},
		{name: "CNPJ of repeated digits", value: "11.111.111/1111-11", want: false},
		{name: "too short", value: "1234567890", want: false},
		{name: "length between CPF and CNPJ", value: "123456789012", want: false},
		{name: "too long", value: "123456789012345", want: false},
		{name: "empty string", value: "", want: false},
		{name: "letters only", value: "not-a-document", want: false},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			assert.Equal(t, ttt.want, cpfcnpj.Valid(ttt.value))
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "bare CPF digits", value: "52998224725", want: "529.982.247-25"},
		{name: "already formatted CPF", value: "529.982.247-25", want: "529.982.247-25"},
		{name: "CPF with stray characters", value: " 529 982 247 25 ", want: "529.982.247-25"},
		{name: "bare CNPJ digits", value: "11222333000181", want: "11.222.333/0001-81"},
		{name: "already formatted CNPJ", value: "11.222.333/0001-81", want: "11.222.333/0001-81"},
		{name: "unexpected length is returned as is", value: "12345", want: "12345"},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			assert.Equal(t, ttt.want, cpfcnpj.Format(ttt.value))
		})
	}
}
