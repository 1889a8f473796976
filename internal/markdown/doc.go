// Package markdown turns onboarding checklist sources into structured
// documents: a front-matter block with the page title, subtitle and
// description, followed by top-level checkbox items with their nested
// sub-instructions.
package markdown
