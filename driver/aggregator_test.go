package driver_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pluglint/pluglint/analyzer"
	"github.com/pluglint/pluglint/driver"
)

func fileMsg(path, code string) *analyzer.Message {
	return &analyzer.Message{
		Path:        path,
		StartLine:   1,
		StartColumn: 1,
		Severity:    analyzer.SeverityWarning,
		Code:        code,
		Text:        "finding",
	}
}

func TestAggregatorSortsByFilePath(t *testing.T) {
	agg := driver.NewAggregator()
	agg.Add("/p/z.go", []*analyzer.Message{fileMsg("/p/z.go", "Z001")})
	agg.Add("/p/a.go", []*analyzer.Message{fileMsg("/p/a.go", "A001"), fileMsg("/p/a.go", "A002")})

	messages := agg.Messages()
	assert.Equal(t, 3, agg.Len())
	assert.Equal(t, "A001", messages[0].Code)
	assert.Equal(t, "A002", messages[1].Code)
	assert.Equal(t, "Z001", messages[2].Code)
}

func TestAggregatorKeepsPerFileOrderUnderConcurrency(t *testing.T) {
	agg := driver.NewAggregator()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		path := fmt.Sprintf("/p/file%02d.go", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			agg.Add(path, []*analyzer.Message{fileMsg(path, "C001"), fileMsg(path, "C002")})
		}()
	}
	wg.Wait()

	messages := agg.Messages()
	assert.Len(t, messages, 32)
	for i := 0; i < 16; i++ {
		assert.Equal(t, "C001", messages[2*i].Code)
		assert.Equal(t, "C002", messages[2*i+1].Code)
		assert.Equal(t, messages[2*i].Path, messages[2*i+1].Path)
	}
	// Deterministic: a second read yields the identical sequence.
	assert.Equal(t, messages, agg.Messages())
}

func TestAggregatorIgnoresEmptyAdds(t *testing.T) {
	agg := driver.NewAggregator()
	agg.Add("/p/a.go", nil)
	assert.Equal(t, 0, agg.Len())
	assert.Empty(t, agg.Messages())
}
