package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell_Of(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Cell("00"), CellOf(0))
	assert.Equal(Cell("0F"), CellOf(0x0f))
	assert.Equal(Cell("A3"), CellOf(0xa3))
}

func TestCell_Byte(t *testing.T) {
	assert := assert.New(t)

	value, err := Cell("7F").Byte()
	assert.NoError(err)
	assert.Equal(byte(0x7f), value)

	value, err = Cell("ff").Byte()
	assert.NoError(err)
	assert.Equal(byte(0xff), value)

	_, err = Cell("8.000000").Byte()
	assert.ErrorIs(err, ErrDecode)
	assert.Equal(ErrCellValue("8.000000"), err)
}

func TestCell_Float(t *testing.T) {
	assert := assert.New(t)

	value, err := Cell("05").Float()
	assert.NoError(err)
	assert.Equal(float32(5), value)

	value, err = Cell("2.5").Float()
	assert.NoError(err)
	assert.Equal(float32(2.5), value)

	_, err = Cell("0A").Float()
	assert.ErrorIs(err, ErrDecode)
}
