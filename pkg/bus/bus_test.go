package bus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misl-switch/mislswitch-go/pkg/params"
)

func testTable(t *testing.T, got *[]byte) *Table {
	t.Helper()
	table, err := NewTable([]Descriptor{
		{
			Code:        0x01,
			ReturnCount: 1,
			Handler: func(p *[params.MaxParams]byte) byte {
				return 0x01
			},
		},
		{
			Code:         0x10,
			StaticParams: []byte{0x40, 0x0D, 0x02},
			ReturnCount:  1,
			Handler: func(p *[params.MaxParams]byte) byte {
				*got = append(*got, p[0], p[1], p[2])
				return 0x01
			},
		},
		{
			Code:        0x00,
			CustomCount: 3,
			ReturnCount: 1,
			Handler: func(p *[params.MaxParams]byte) byte {
				*got = append(*got, p[0], p[1], p[2])
				return 0x01
			},
		},
	})
	require.NoError(t, err)
	return table
}

func TestTableValidation(t *testing.T) {
	handler := func(*[params.MaxParams]byte) byte { return 0 }

	_, err := NewTable([]Descriptor{{Code: MaxCode, Handler: handler}})
	assert.ErrorIs(t, err, ErrCodeRange)

	_, err = NewTable([]Descriptor{
		{Code: 0x01, Handler: handler},
		{Code: 0x01, Handler: handler},
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = NewTable([]Descriptor{{Code: 0x01}})
	assert.ErrorIs(t, err, ErrNoHandler)

	_, err = NewTable([]Descriptor{{
		Code:         0x01,
		StaticParams: make([]byte, 15),
		CustomCount:  10,
		Handler:      handler,
	}})
	assert.ErrorIs(t, err, params.ErrTooManyParams)

	// no command can declare more custom bytes than there are slots
	_, err = NewTable([]Descriptor{{
		Code:        0x01,
		CustomCount: FrameSize - 1,
		Handler:     handler,
	}})
	assert.ErrorIs(t, err, params.ErrTooManyParams)
}

func TestZeroCustomFrameCompletesOnCodeByte(t *testing.T) {
	var got []byte
	table := testTable(t, &got)
	a := NewAssembler(table)

	require.NoError(t, a.Start())
	require.NoError(t, a.Data(0x01))

	select {
	case f := <-a.Frames():
		assert.Equal(t, uint8(0x01), f.Code())
		assert.Empty(t, f.Custom())
	default:
		t.Fatal("frame should complete on the code byte alone")
	}
}

func TestShortFrameNeverCompletes(t *testing.T) {
	var got []byte
	table := testTable(t, &got)
	a := NewAssembler(table)

	require.NoError(t, a.Start())
	require.NoError(t, a.Data(0x00)) // wants 3 custom bytes
	require.NoError(t, a.Data(0x6E))
	require.NoError(t, a.Data(0x01))
	require.NoError(t, a.Stop())

	select {
	case <-a.Frames():
		t.Fatal("incomplete frame must not be delivered")
	default:
	}
}

func TestDispatchBindsStaticParams(t *testing.T) {
	var got []byte
	table := testTable(t, &got)
	a := NewAssembler(table)
	rec := &Recorder{}
	var busMu sync.Mutex
	d := NewDispatcher(table, a, rec, &busMu)

	require.NoError(t, a.Send([]byte{0x10}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	out, err := d.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExecuted, out)
	assert.Equal(t, []byte{0x40, 0x0D, 0x02}, got)
	assert.Equal(t, []byte{0x01, 0x01}, rec.Bytes(), "return count then status byte")
}

func TestDispatchBindsCustomAfterStatic(t *testing.T) {
	var got []byte
	table := testTable(t, &got)
	a := NewAssembler(table)
	rec := &Recorder{}
	var busMu sync.Mutex
	d := NewDispatcher(table, a, rec, &busMu)

	require.NoError(t, a.Send([]byte{0x00, 0x6E, 0x10, 0x00}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	out, err := d.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExecuted, out)
	assert.Equal(t, []byte{0x6E, 0x10, 0x00}, got)
}

func TestOutOfRangeCodeDiscarded(t *testing.T) {
	var got []byte
	table := testTable(t, &got)
	a := NewAssembler(table)
	rec := &Recorder{}
	var busMu sync.Mutex
	d := NewDispatcher(table, a, rec, &busMu)

	require.NoError(t, a.Send([]byte{0x6E}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	out, err := d.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDiscarded, out)
	assert.Empty(t, rec.Bytes(), "discarded frames produce no response")
}

func TestUnusedCodeAnnouncesZero(t *testing.T) {
	var got []byte
	table := testTable(t, &got)
	a := NewAssembler(table)
	rec := &Recorder{}
	var busMu sync.Mutex
	d := NewDispatcher(table, a, rec, &busMu)

	// 0x04 is in range but has no registered command; the master must
	// still receive the announcement byte or it stalls clocking a reply
	require.NoError(t, a.Send([]byte{0x04}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	out, err := d.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExecuted, out)
	assert.Equal(t, []byte{0x00}, rec.Bytes(), "unused codes announce zero return bytes")
	assert.Empty(t, got)
}

func TestQueueOverloadLatches(t *testing.T) {
	var got []byte
	table := testTable(t, &got)
	a := NewAssembler(table)

	for i := 0; i < QueueDepth; i++ {
		require.NoError(t, a.Send([]byte{0x01}))
	}
	err := a.Send([]byte{0x01})
	require.ErrorIs(t, err, ErrQueueOverload)
	assert.True(t, a.Overloaded())

	// the fault is latched until the slave restarts
	assert.ErrorIs(t, a.Start(), ErrQueueOverload)
}

func TestWidestFrameCompletes(t *testing.T) {
	handler := func(*[params.MaxParams]byte) byte { return 0 }
	table, err := NewTable([]Descriptor{{
		Code:        0x02,
		CustomCount: params.MaxParams,
		ReturnCount: 0xFF,
		Handler:     handler,
	}})
	require.NoError(t, err)
	a := NewAssembler(table)

	require.NoError(t, a.Start())
	require.NoError(t, a.Data(0x02))
	for i := 0; i < params.MaxParams+5; i++ {
		require.NoError(t, a.Data(0xAA))
	}

	// the frame completed at its declared length; the trailing bytes
	// fell outside any frame and were ignored
	select {
	case f := <-a.Frames():
		assert.Len(t, f.Custom(), params.MaxParams)
	default:
		t.Fatal("widest frame should complete")
	}
	select {
	case <-a.Frames():
		t.Fatal("trailing bytes must not start a second frame")
	default:
	}
}
