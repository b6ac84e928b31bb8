package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RemoteGateway --dir ../usecase --output usecase --outpkg usecasemock --filename remote_gateway_mock.go
