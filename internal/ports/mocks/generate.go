//go:generate mockgen -source=../context_provider.go -destination=./mock_context_provider.go -package=mocks
//go:generate mockgen -source=../catalog.go          -destination=./mock_catalog.go          -package=mocks
//go:generate mockgen -source=../cart_service.go     -destination=./mock_cart_service.go     -package=mocks
//go:generate mockgen -source=../event_publisher.go  -destination=./mock_event_publisher.go  -package=mocks
//go:generate mockgen -source=../validator.go        -destination=./mock_validator.go        -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../worker.go           -destination=./mock_worker.go           -package=mocks

package mocks
