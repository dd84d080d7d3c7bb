package main

import "audio-transcriber/cmd/transcriber/cmd"

// @title Audio Transcriber API
// @version 1.0
// @description Upload a short audio file and transcribe it with OpenAI Whisper or Gemini using your own API key.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
