package group_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/resource-core/group"
)

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	group.SetLogger(zap.New(core))
	defer group.SetLogger(nil)

	f := newFixture(t)
	g, err := f.groups.Create(false, 1, "logged")
	require.NoError(t, err)
	require.NoError(t, g.Dispose())

	disposed := logs.FilterMessage("group disposed").All()
	require.Len(t, disposed, 1)
	assert.Equal(t, "group", disposed[0].LoggerName)
	assert.Equal(t, false, disposed[0].ContextMap()["cascade"])

	group.SetLogger(nil)
	before := logs.Len()
	g2, err := f.groups.Create(false, 1, "quiet")
	require.NoError(t, err)
	require.NoError(t, g2.Dispose())
	assert.Equal(t, before, logs.Len())
}
