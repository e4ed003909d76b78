package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sprout-cli/sprout/pkg/config"
	"github.com/sprout-cli/sprout/pkg/errors"
	"github.com/sprout-cli/sprout/pkg/logging"
	"github.com/sprout-cli/sprout/pkg/schema"
	"github.com/sprout-cli/sprout/pkg/secrets"
)

// Materializer rewrites a template env file into the final one
type Materializer struct {
	policy    *Policy
	generator secrets.Generator
	openFlag  string // env key of the auth-disabling flag, "" to disable
}

// NewMaterializer creates a materializer over a policy and a secret
// generator
func NewMaterializer(policy *Policy, generator secrets.Generator, openFlag string) *Materializer {
	return &Materializer{
		policy:    policy,
		generator: generator,
		openFlag:  openFlag,
	}
}

// PolicyFromConfig builds the env key policy from configuration data:
// the secret key list, the env-to-answer key table, and the open-access
// flag computed from the access mode answer.
func PolicyFromConfig(env config.Env) *Policy {
	policy := NewPolicy()
	for _, key := range env.SecretKeys {
		policy.Secret(key)
	}
	for envKey, answerKey := range env.AnswerKeys {
		policy.Answer(envKey, answerKey)
	}
	if env.OpenAccessFlag != "" {
		policy.Flag(env.OpenAccessFlag, func(a schema.Answers) bool {
			return a.String(schema.KeyAccessMode) == schema.AccessOpen
		})
	}
	return policy
}

// Materialize reads the template at templatePath and writes the final
// env file to destPath, exclusively. The template must exist
// (TEMPLATE_CORRUPT otherwise, since it ships with the cloned tree) and
// the destination must not (DESTINATION_EXISTS). Output lines keep the
// template's order; when the open access mode was chosen and the
// template itself carries no flag line, one is appended.
func (m *Materializer) Materialize(templatePath, destPath string, answers schema.Answers) error {
	logger := logging.GetLogger("envfile")

	template, err := os.Open(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrTemplateCorrupt,
				"template is missing its env definition file %s", templatePath)
		}
		return errors.Wrapf(err, errors.ErrTemplateCorrupt,
			"cannot read env definition file %s", templatePath)
	}
	defer func() { _ = template.Close() }()

	// Exclusive create: clone and install take long enough that the
	// earlier path check is no longer trustworthy.
	dest, err := os.OpenFile(destPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return errors.Newf(errors.ErrDestinationExists,
				"env file %s already exists", destPath)
		}
		return errors.Wrapf(err, errors.ErrWriteFailed, "cannot create env file %s", destPath)
	}
	defer func() { _ = dest.Close() }()

	writer := bufio.NewWriter(dest)
	openAccess := answers.String(schema.KeyAccessMode) == schema.AccessOpen
	flagEmitted := false
	lineCount := 0
	newline := "\n" // the template's prevailing line ending
	lastTerm := "\n"

	// Lines are read with their terminators so passthrough lines stay
	// byte-identical (CRLF templates included) and a template whose last
	// line has no newline does not gain one.
	reader := bufio.NewReader(template)
	for {
		raw, readErr := reader.ReadString('\n')
		if raw != "" {
			body, term := splitLineEnd(raw)
			if term != "" {
				newline = term
			}
			lastTerm = term
			lineCount++

			line := ParseLine(body)
			if line.Kind == Passthrough {
				if _, err := writer.WriteString(raw); err != nil {
					return errors.Wrap(err, errors.ErrWriteFailed, "failed to write env line")
				}
			} else {
				value, err := m.resolve(line.Key, answers)
				if err != nil {
					return err
				}
				if line.Key == m.openFlag {
					flagEmitted = true
				}
				if _, err := fmt.Fprintf(writer, "%s=%s%s", line.Key, value, term); err != nil {
					return errors.Wrap(err, errors.ErrWriteFailed, "failed to write env line")
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return errors.Wrapf(readErr, errors.ErrWriteFailed, "failed to read %s", templatePath)
		}
	}

	// Additive transformation: open access injects the flag line even
	// though the template does not carry it.
	if openAccess && m.openFlag != "" && !flagEmitted {
		if lineCount > 0 && lastTerm == "" {
			if _, err := writer.WriteString(newline); err != nil {
				return errors.Wrap(err, errors.ErrWriteFailed, "failed to write env line")
			}
		}
		if _, err := fmt.Fprintf(writer, "%s=true%s", m.openFlag, newline); err != nil {
			return errors.Wrap(err, errors.ErrWriteFailed, "failed to write env line")
		}
	}

	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, errors.ErrWriteFailed, "failed to flush %s", destPath)
	}

	logger.Debug().
		Str("template", templatePath).
		Str("dest", destPath).
		Int("lines", lineCount).
		Bool("openAccess", openAccess).
		Msg("Materialized env file")

	return nil
}

// splitLineEnd separates a raw line from its terminator ("\n", "\r\n"
// or none on an unterminated final line).
func splitLineEnd(raw string) (body, term string) {
	body = strings.TrimSuffix(raw, "\n")
	if len(body) < len(raw) {
		term = "\n"
		if trimmed := strings.TrimSuffix(body, "\r"); len(trimmed) < len(body) {
			body = trimmed
			term = "\r\n"
		}
	}
	return body, term
}

// resolve produces the output value for one key per the policy
func (m *Materializer) resolve(key string, answers schema.Answers) (string, error) {
	rule := m.policy.Rule(key)

	switch rule.Kind {
	case GeneratedSecret:
		token, err := m.generator.Generate()
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrWriteFailed,
				"failed to generate secret for %s", key)
		}
		return token, nil

	case ComputedFlag:
		if rule.Compute != nil && rule.Compute(answers) {
			return "true", nil
		}
		return "false", nil

	default:
		return answers.String(rule.AnswerKey), nil
	}
}
