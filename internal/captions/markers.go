package captions

import "regexp"

// Platform strings the scraper keys on. None of them are a published contract;
// when the watch page changes shape, this file is what needs updating.
const (
	watchURLFormat = "https://www.youtube.com/watch?hl=%s&persist_hl=1&v=%s"
	defaultLang    = "en"

	consentMarker       = `action="https://consent.youtube.com/s"`
	consentCookieFormat = "CONSENT=YES+%s;Domain=.youtube.com"

	manifestStartMarker = `"captions":`
	manifestEndMarker   = `,"videoDetails`
	captchaMarker       = `class="g-recaptcha"`
	playabilityMarker   = `"playabilityStatus":`

	generatedKind = "asr"

	formatParam    = "&fmt="
	translateParam = "&tlang="
)

var consentTokenRe = regexp.MustCompile(`name="v" value="(.*?)"`)
