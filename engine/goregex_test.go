package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoMultiRegexEngineScan(t *testing.T) {
	f := NewGoMultiRegexEngineFactory()
	m, err := f.NewMultiRegexEngine([]MultiRegexEnginePattern{
		{ID: 0, Expr: `ora-\d+`},
		{ID: 1, Expr: `out of memory`},
		{ID: 2, Expr: `deadlock`},
	})
	assert.Nil(t, err)
	defer m.Close()

	matches, err := m.Scan([]byte("ERROR ORA-00060 deadlock detected"))

	assert.Nil(t, err)
	assert.Equal(t, 2, len(matches))
	assert.Equal(t, 0, matches[0].ID)
	assert.Equal(t, len("ERROR ORA-00060"), matches[0].EndPos)
	assert.Equal(t, 2, matches[1].ID)
}

func TestGoMultiRegexEngineCaseInsensitive(t *testing.T) {
	f := NewGoMultiRegexEngineFactory()
	m, err := f.NewMultiRegexEngine([]MultiRegexEnginePattern{
		{ID: 0, Expr: `connection refused`},
	})
	assert.Nil(t, err)
	defer m.Close()

	matches, err := m.Scan([]byte("dial tcp: CONNECTION REFUSED"))

	assert.Nil(t, err)
	assert.Equal(t, 1, len(matches))
}

func TestGoMultiRegexEngineReportsEachPatternOnce(t *testing.T) {
	f := NewGoMultiRegexEngineFactory()
	m, err := f.NewMultiRegexEngine([]MultiRegexEnginePattern{
		{ID: 0, Expr: `timeout`},
	})
	assert.Nil(t, err)
	defer m.Close()

	matches, err := m.Scan([]byte("timeout waiting for timeout handler"))

	assert.Nil(t, err)
	assert.Equal(t, 1, len(matches))
}

func TestGoMultiRegexEngineRejectsInvalidExpression(t *testing.T) {
	f := NewGoMultiRegexEngineFactory()

	_, err := f.NewMultiRegexEngine([]MultiRegexEnginePattern{
		{ID: 0, Expr: `(unclosed`},
	})

	assert.NotNil(t, err)
}
