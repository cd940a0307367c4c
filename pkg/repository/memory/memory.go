package memory

import (
	"github.com/runsynapse/ghsync/pkg/domain/interfaces"
	"github.com/runsynapse/ghsync/pkg/domain/model"
)

// New creates a new in-memory store
func New() interfaces.Store {
	return &store{
		installations: make(map[int64]*installData),
		states:        make(map[string]*model.ConnectionState),
	}
}
