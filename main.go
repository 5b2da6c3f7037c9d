/*
main.go

Copyright © 2025 Code Monkey Cybersecurity
Contact: git@cybermonkey.net.au

This file is part of pwquality.

This software is dual-licensed under the Do No Harm License
and the GNU Affero General Public License v3 (AGPL-3.0-or-later).
You may use, modify, and distribute it under the terms of either license.

See LICENSE.agpl and LICENSE.dnh for full details.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/CodeMonkeyCybersecurity/pwquality/cmd"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/telemetry"
	"github.com/joho/godotenv"
)

func main() {
	// A .env in the working directory may set PWQ_* and LOG_LEVEL.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "warning: could not read .env:", err)
	}

	if err := telemetry.Init("pwquality"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: telemetry disabled:", err)
	}

	code := cmd.Execute()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	_ = telemetry.Shutdown(ctx)
	cancel()
	os.Exit(code)
}
