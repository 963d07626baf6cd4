// Package email delivers transactional mail for the Shepherd API.
//
// Mailer is the delivery interface used by services. SESMailer sends through
// Amazon SES; LogMailer writes messages to the structured log and is used in
// development and tests. RenderInvitation builds the invitation message.
package email
