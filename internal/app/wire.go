//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"audio-transcriber/internal/api/server"
	"audio-transcriber/internal/app/converter"
	"audio-transcriber/internal/config"
)

var transcriptionSet = wire.NewSet(
	provideRegistry,
	provideHistory,
	provideCache,
	provideStorage,
	provideTranscriptionService,
)

// InitializeServer builds the HTTP server with every configured store.
func InitializeServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	wire.Build(transcriptionSet, provideServiceContainer, provideGatherer, provideServer)
	return nil, nil, nil
}

// InitializeConverter builds the local-file converter used by the transcribe command.
func InitializeConverter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*converter.Converter, func(), error) {
	wire.Build(transcriptionSet, provideConverter)
	return nil, nil, nil
}
