// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"errors"
	"io"

	"github.com/urfave/cli/v3"

	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
)

func menuCmd() *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "Interactive menu for local and remote processing",
		Description: `Show the processing menu until Exit is chosen. Local and remote runs use
the configuration file and the global flags; remote runs prompt for
credentials unless PORTCSV_USERNAME and PORTCSV_PASSWORD are set.`,
		Action: runMenu,
	}
}

func runMenu(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	pr := newPrompter(cmd, p)

	for ctx.Err() == nil {
		p.Menu()
		choice, err := pr.line(ctx, "Enter your choice (1-3): ")
		if err != nil {
			if errors.Is(err, io.EOF) || interrupted(ctx, err) {
				return nil
			}
			return err
		}

		var runErr error
		switch choice {
		case "1":
			p.Info("Processing local log files...")
			runErr = runLocal(ctx, cmd, cfg, p)
		case "2":
			p.Info("Processing remote devices...")
			runErr = runRemote(ctx, cmd, cfg, p, pr)
		case "3":
			p.Notice("Exiting the program. Goodbye!")
			return nil
		default:
			p.Notice("Invalid choice. Please try again.")
		}

		if ctx.Err() != nil {
			return nil
		}
		if runErr != nil {
			p.Error(apperrors.MessageOf(runErr))
		}

		if _, err := pr.line(ctx, "Press Enter to continue..."); err != nil {
			if errors.Is(err, io.EOF) || interrupted(ctx, err) {
				return nil
			}
			return err
		}
	}

	return nil
}
