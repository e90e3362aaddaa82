package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Opener --dir ../domain/player --output domain/player --outpkg playermock --filename opener_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Store --dir ../domain/player --output domain/player --outpkg playermock --filename store_mock.go
