package worker

import (
	"context"
)

// Worker - фоновый процесс сервиса
type Worker interface {
	// Start блокирует до остановки или отмены ctx
	Start(ctx context.Context) error

	// Stop просит воркер завершиться, повторный вызов безопасен
	Stop() error

	Name() string
}
