// Copyright 2026 Rafael Mazzoni
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

package operation

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/session"
)

// Runner launches background execution units and tracks them so the
// interactive side can wait for them to finish on shutdown. A panic escaping
// a unit never crosses the boundary: it is recovered and surfaced as a
// [FATAL] log line, and the controller stays usable.
type Runner struct {
	group errgroup.Group
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Go runs fn on a background goroutine. The name identifies the unit in
// fatal log lines.
func (r *Runner) Go(sess *session.Session, name string, fn func()) {
	r.group.Go(func() error {
		defer func() {
			if rec := recover(); rec != nil {
				sess.Log(fmt.Sprintf("[FATAL] %s: %v", name, rec))
			}
		}()
		fn()
		return nil
	})
}

// Wait blocks until every launched unit has returned.
func (r *Runner) Wait() {
	_ = r.group.Wait()
}
