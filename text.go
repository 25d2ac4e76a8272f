package main

var (
	SkillsTitle = `My Skills`

	SkillsHint = `Hover a row to hold it still, or tap a logo to read its name.`

	ContactTitle = `Let's work together`

	ContactIntro = `Have a backend to build, an API to design or a project you want a
	second pair of eyes on? Send a message and I'll get back to you.`

	ContactSuccess = `Thank you for your message! I'll get back to you soon.`

	ContactFailure = `Sorry, there was an error sending your message. Please try again later.`

	ContactInvalid = `Please fill in your name, a valid email address and a message.`
)

// Section ids in page order, used by the header navigation and /sections/:name.
var Sections = []string{
	"home",
	"competencies",
	"journey",
	"skills",
	"portfolio",
	"certifications",
	"experience",
	"learn",
	"contact",
}
