/*
Copyright © 2025 The lingward authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lingward/lingward/internal"
	"github.com/lingward/lingward/internal/moderator"
	"github.com/lingward/lingward/internal/store"
)

var watchVerbose bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Moderate a stream of content units from stdin",
	Long: `Read one content unit per line from standard input and emit
moderation replies to standard output.

Lines starting with "img:" are treated as image URLs; everything else
is inline text. Blank lines are ignored.

With --db, translations are remembered so a repeated foreign-language
message does not cost another model call.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}

		log := logrus.New()
		log.SetOutput(os.Stderr)
		if watchVerbose {
			log.SetLevel(logrus.DebugLevel)
		}

		var memory *store.Store
		if !noCache && dbPath != "" {
			memory, err = store.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open translation memory: %w", err)
			}
			defer memory.Close()
		}

		disp := moderator.New(p.extractor, p.translator, moderator.ConsoleTransport{W: os.Stdout}, moderator.Config{
			TargetCode: p.targetCode,
			TargetName: p.targetName,
			Memory:     memory,
			Check:      p.validator,
			Logger:     log,
		})

		ctx := context.Background()

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			unit := internal.TextUnit(line)
			if ref, ok := strings.CutPrefix(line, "img:"); ok {
				unit = internal.ImageUnit(strings.TrimSpace(ref))
			}

			msg := internal.InboundMessage{
				MessageID: uuid.NewString(),
				ChatID:    "stdin",
				Unit:      unit,
			}
			if err := disp.Handle(ctx, msg); err != nil {
				log.WithError(err).Error("failed to handle message")
			}
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Enable debug logging")
	watchCmd.Flags().StringVar(&dbPath, "db", "", "Path to the translation memory database")
	watchCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the translation memory")

	addPipelineFlags(watchCmd)
}
