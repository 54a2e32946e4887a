package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `country,state,lga,city,city_region,fee
Nigeria,Lagos,Ikeja,Ikeja,Allen,8500
Nigeria,Lagos,Ikeja,Ikeja,Alausa,4000.5
nigeria,lagos,ikeja,ikeja,allen,9000
`

func TestReadRows_DeduplicaSinDistinguirMayusculas(t *testing.T) {
	rows, err := readRows(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alausa", rows[0].CityRegion)
	assert.Equal(t, "4000.50", rows[0].Fee.StringFixed(2))
	assert.Equal(t, "allen", rows[1].CityRegion)
	assert.Equal(t, "9000.00", rows[1].Fee.StringFixed(2))
}

func TestReadRows_Errores(t *testing.T) {
	cases := map[string]string{
		"encabezado":   "pais,state,lga,city,city_region,fee\n",
		"fee inválido": "country,state,lga,city,city_region,fee\nNigeria,Lagos,Ikeja,Ikeja,Allen,mucho\n",
		"negativo":     "country,state,lga,city,city_region,fee\nNigeria,Lagos,Ikeja,Ikeja,Allen,-1\n",
		"campo vacío":  "country,state,lga,city,city_region,fee\nNigeria,,Ikeja,Ikeja,Allen,10\n",
		"columnas":     "country,state,lga,city,city_region,fee\nNigeria,Lagos\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readRows(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestDecodeInput_Latin1(t *testing.T) {
	// "Oyó" en ISO-8859-1: ó = 0xF3
	raw := []byte("country,state,lga,city,city_region,fee\nNigeria,Oy\xf3,Ibadan,Ibadan,Bodija,100\n")
	rows, err := readRows(decodeInput(raw))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Oyó", rows[0].State)
}

func TestDecodeInput_UTF8ConBOM(t *testing.T) {
	raw := append([]byte("\xef\xbb\xbf"), []byte(sample)...)
	data, err := io.ReadAll(decodeInput(raw))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "country,"))
}

func TestWriteSQL(t *testing.T) {
	rows, err := readRows(strings.NewReader("country,state,lga,city,city_region,fee\nNigeria,Lagos,Ikeja,Ikeja,Adeniyi's Close,1200\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, rows, func() string { return "id-1" }))
	out := buf.String()

	assert.Contains(t, out, "VALUES ('id-1', 'Nigeria', 'Lagos', 'Ikeja', 'Ikeja', 'Adeniyi''s Close', 1200.00)")
	assert.Contains(t, out, "DO UPDATE SET fee = EXCLUDED.fee;")
}
