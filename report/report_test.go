package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pluglint/pluglint/report"
)

func TestInfofGatedByVerbose(t *testing.T) {
	var out bytes.Buffer
	quiet := report.New(&out, false)
	quiet.Infof("ignoring %s", "/p/a.go")
	assert.Empty(t, out.String())

	verbose := report.New(&out, true)
	verbose.Infof("ignoring %s", "/p/a.go")
	assert.Contains(t, out.String(), "ignoring /p/a.go")
}

func TestErrorfAlwaysEmitted(t *testing.T) {
	var out bytes.Buffer
	r := report.New(&out, false)
	r.Errorf("analyzer %s failed", "broken")
	assert.Contains(t, out.String(), "analyzer broken failed")
}
