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
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "lingward",
	Short: "Channel language moderation pipeline",
	Long: `lingward inspects channel messages, decides whether their content
(inline text, or text embedded in an image) is written in the target
language, and produces a translation plus a moderation notice when it
is not.

A fast local statistical detector answers the common case; an LLM
settles everything the detector cannot, transcribes image text, and
produces translations.

Use "lingward moderate --help" for single-shot options and
"lingward watch --help" for stream moderation.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
