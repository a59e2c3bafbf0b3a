package ports

import "context"

// Worker — фоновый компонент, живущий вместе с приложением.
type Worker interface {
	Run(ctx context.Context) error
	Close() error
}
