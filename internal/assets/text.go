package assets

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/logger"
)

// Text returns a text file's contents with line endings normalised.
// Missing files are logged and read as empty.
func (m *Manager) Text(name string) string {
	if name == "" {
		return ""
	}
	data, err := m.Load(name)
	if err != nil {
		logger.Warn("text asset missing", zap.String("file", name), zap.Error(err))
		return ""
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n")
}
