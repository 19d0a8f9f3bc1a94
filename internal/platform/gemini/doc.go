// Package gemini provides an implementation of the validation.Validator
// interface that uses Google's Gemini API for grading free-text conjugation
// answers.
//
// This package is an infrastructure adapter, connecting the application's
// grading logic to Google's external Gemini AI service. It translates
// between the application's domain models and the Gemini API without
// exposing the details of the external service to the core application.
//
// Key components:
//
// 1. Validator:
//   - Implements the validation.Validator interface
//   - Handles communication with the Gemini API
//   - Processes structured verdicts into validation results
//
// 2. Prompt Management:
//   - Substitutes the question context into a prompt template
//   - Constrains the model to a JSON verdict via a response schema
//
// 3. Error Handling:
//   - Implements retry logic with exponential backoff for transient errors
//   - Categorizes and translates API errors to application-specific errors
//   - Handles content filtering and safety measures
//
// Callers must treat every returned error as a signal to fall back to
// deterministic exact-match grading; a validator outage never fails a
// learner's answer.
package gemini
