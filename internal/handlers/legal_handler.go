package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type LegalHandler struct{}

func NewLegalHandler() *LegalHandler {
	return &LegalHandler{}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - MindWell</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Privacy Policy</h1>
<p>Last updated: August 2026</p>
<h2>Information We Collect</h2>
<p>We collect your email address and the check-in entries you record (mood, energy, sleep, and habit data) to provide our services.</p>
<h2>How We Use Your Information</h2>
<p>Your check-in data is used solely to compute your personal trends, scores, and insights inside MindWell. It is never used for advertising or profiling.</p>
<h2>Data Storage</h2>
<p>Your data is stored securely on encrypted servers. We do not sell or share your personal information with third parties.</p>
<h2>Health Disclaimer</h2>
<p>MindWell is a self-tracking tool, not a medical device. Scores and insights are informational and are not a diagnosis or a substitute for professional care.</p>
<h2>Account Deletion</h2>
<p>You can delete your account and all associated data at any time from the app settings.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at support@mindwell.app</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - MindWell</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Terms of Service</h1>
<p>Last updated: August 2026</p>
<h2>Acceptance</h2>
<p>By using MindWell, you agree to these terms.</p>
<h2>Not Medical Advice</h2>
<p>MindWell provides wellness tracking and statistics for personal reflection. It does not provide medical advice, diagnosis, or treatment. If you are in crisis, contact local emergency services.</p>
<h2>Your Data</h2>
<p>You retain ownership of the check-in data you record. We process it only to operate the service.</p>
<h2>Termination</h2>
<p>We may suspend or terminate accounts that abuse the service.</p>
<h2>Contact</h2>
<p>For questions, contact us at support@mindwell.app</p>
</body></html>`)
}
