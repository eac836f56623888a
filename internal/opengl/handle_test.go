package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type deleteLog struct {
	ids []uint32
}

func (d *deleteLog) del(id uint32) { d.ids = append(d.ids, id) }

func TestHandleRelease(t *testing.T) {
	var log deleteLog
	h := NewHandle(7, log.del)
	assert.True(t, h.Valid())
	assert.Equal(t, uint32(7), h.ID())

	h.Release()
	h.Release()
	assert.False(t, h.Valid())
	assert.Equal(t, []uint32{7}, log.ids)
}

func TestZeroHandle(t *testing.T) {
	var h Handle
	assert.False(t, h.Valid())
	assert.NotPanics(t, h.Release)

	var log deleteLog
	z := NewHandle(0, log.del)
	z.Release()
	assert.Empty(t, log.ids)
}
