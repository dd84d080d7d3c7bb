package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportFormat(t *testing.T) {
	tests := []struct {
		flag, path, want string
	}{
		{"", "historial.xlsx", "xlsx"},
		{"", "historial.CSV", "csv"},
		{"", "historial.json", "json"},
		{"", "historial", "xlsx"},
		{"csv", "historial.xlsx", "csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exportFormat(tt.flag, tt.path), tt.path)
	}
}
