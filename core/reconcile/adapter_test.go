package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogDriver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := newCountingFactory()
	eng := NewEngine(f, WithDrivers(NewLogDriver(zap.New(core), true)))

	prev := nestedPara("x")
	el := mount(t, eng, f, prev)
	patch(t, eng, el, nestedPara("y"), prev)

	nested := logs.FilterMessage("Reconciled nested children").All()
	require.Len(t, nested, 1)
	assert.Equal(t, zapcore.DebugLevel, nested[0].Level)
	assert.Equal(t, "p", nested[0].ContextMap()["tag"])

	top := logs.FilterMessage("Reconciled children").All()
	require.Len(t, top, 1)
	fields := top[0].ContextMap()
	assert.Equal(t, "div", fields["tag"])
	assert.Equal(t, "default", fields["flag"])
	assert.EqualValues(t, 1, fields["effects"])
	assert.EqualValues(t, 1, fields["updates"])
}

func TestLogDriver_QuietNested(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := newCountingFactory()
	eng := NewEngine(f, WithDrivers(NewLogDriver(zap.New(core), false)))

	prev := nestedPara("x")
	el := mount(t, eng, f, prev)
	patch(t, eng, el, nestedPara("y"), prev)

	assert.Equal(t, 1, logs.Len())
}

func TestLogDriver_NilLogger(t *testing.T) {
	d := NewLogDriver(nil, true)
	require.NotNil(t, d.Logger)
}

func TestStatsDriver(t *testing.T) {
	f := newCountingFactory()
	stats := &StatsDriver{}
	eng := NewEngine(f, WithDrivers(stats))

	prev := nestedPara("x")
	el := mount(t, eng, f, prev)
	patch(t, eng, el, nestedPara("y"), prev)
	patch(t, eng, el, nestedPara("z"), nestedPara("y"))

	assert.Equal(t, 2, stats.Passes())
	assert.Equal(t, 4, stats.Calls())
	assert.Equal(t, Summary{Total: 1, Updates: 1}, stats.Last())
}
