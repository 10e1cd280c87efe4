// Copyright 2020-2021 Dolthub, Inc.
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

package validator

import (
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// DiagnosticLog reports the outcome of a Validate/ValidateParams call, the
// way auth.AuditMethod reports the outcome of an authentication or
// authorization check.
type DiagnosticLog interface {
	Validation(queryID string, err error)
}

// NewDiagnosticLog creates a DiagnosticLog that logs to a logrus.Logger.
func NewDiagnosticLog(l *logrus.Logger) DiagnosticLog {
	return &logDiagnostics{log: l.WithField("system", "validator")}
}

const validationLogMessage = "query validation"

type logDiagnostics struct {
	log *logrus.Entry
}

// Validation implements DiagnosticLog.
func (d *logDiagnostics) Validation(queryID string, err error) {
	fields := logrus.Fields{
		"query_id": queryID,
		"valid":    true,
	}
	if err != nil {
		fields["valid"] = false
		fields["error"] = err
	}
	d.log.WithFields(fields).Info(validationLogMessage)
}

// WithQueryID attaches a correlation ID to log, generating one if id is
// empty. Callers that already carry a request-scoped ID (e.g. from a CLI
// invocation) pass it through so diagnostics can be joined across a pipeline.
func WithQueryID(log *logrus.Entry, id string) (*logrus.Entry, string) {
	if id == "" {
		if generated, err := uuid.NewV4(); err == nil {
			id = generated.String()
		}
	}
	if log == nil {
		return nil, id
	}
	return log.WithField("query_id", id), id
}
