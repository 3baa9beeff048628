package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AdamMil/BirdhouseManor/internal/catalog"
)

func TestExtensionLine(t *testing.T) {
	catalog.RegisterExtension("testdata/cmd", catalog.Extension{})
	line := extensionLine()
	assert.Contains(t, line, "Extensions: ")
	assert.Contains(t, line, "testdata/cmd")
}
