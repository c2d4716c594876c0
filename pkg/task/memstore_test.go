package task_test

import (
	"testing"

	"taskboard/pkg/task"
	"taskboard/pkg/task/storetest"
)

func TestMemStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) task.Store {
		return task.NewMemStore()
	})
}
