/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// Exec runs a command with the base directory as its working directory and
// returns the combined stdout and stderr. On failure the partial output is
// returned alongside the error so callers can surface diagnostics.
func (f *FileSystem) Exec(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = f.base
	out, err := cmd.CombinedOutput()
	if err != nil {
		f.log.Error("command failed", slog.String("cmd", name), slog.Any("err", err))
		return string(out), fmt.Errorf("exec %s: %w", name, err)
	}
	return string(out), nil
}
