package repomanager

import (
	"context"

	"github.com/dmitrijs2005/corenotes/internal/server/tasks"
)

type MemoryRepositoryManager struct {
	tasks *tasks.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{tasks: tasks.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}
