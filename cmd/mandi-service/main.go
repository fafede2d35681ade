package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Dawn-Fighter/Mandi-Counter/mandiservice"
)

func main() {
	if err := mandiservice.Run(); err != nil {
		log.Error().Err(err).Msg("mandi-service exited with error")
		os.Exit(1)
	}
}
