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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lingward/lingward/internal"
	"github.com/lingward/lingward/internal/moderator"
	"github.com/lingward/lingward/internal/translator"
)

var (
	moderateText  string
	moderateImage string
)

var moderateCmd = &cobra.Command{
	Use:   "moderate",
	Short: "Run one content unit through the moderation pipeline",
	Long: `Run a single piece of content through the full pipeline: language
classification, translation when the content is not in the target
language, and the moderation reply that would be posted.

Exactly one of --text or --image is required. The reply, if any, is
printed to standard output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (moderateText == "") == (moderateImage == "") {
			return fmt.Errorf("exactly one of --text or --image is required")
		}

		p, err := buildPipeline()
		if err != nil {
			return err
		}

		unit := internal.TextUnit(moderateText)
		if moderateImage != "" {
			unit = internal.ImageUnit(moderateImage)
		}

		ctx := context.Background()

		res := p.extractor.Extract(ctx, unit)
		if res.Text == "" || res.IsTarget {
			fmt.Fprintf(os.Stderr, "No action: content is in %s or contains no text\n", p.targetName)
			return nil
		}

		translated := p.translator.Translate(ctx, res.Text)
		if translated != translator.Unavailable {
			if err := p.validator.Check(translated); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}

		fmt.Println(moderator.ComposeReply(translated, p.targetName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moderateCmd)

	moderateCmd.Flags().StringVar(&moderateText, "text", "", "Inline text content to moderate")
	moderateCmd.Flags().StringVar(&moderateImage, "image", "", "URL of an image attachment to moderate")

	addPipelineFlags(moderateCmd)
}
