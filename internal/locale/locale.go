// Package locale supplies the bilingual label catalog for the wizard UI.
// English and Arabic are the two supported languages; the configured
// preference is resolved with a standard language matcher so regional tags
// like "ar-SA" or "en-GB" land on the right catalog.
package locale

import (
	"golang.org/x/text/language"

	"github.com/khidmahq/khidma/internal/logger"
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Arabic,
}

var matcher = language.NewMatcher(supported)

// Match resolves a configured locale preference to a supported language.
// Unparseable or unsupported preferences fall back to English.
func Match(pref string) language.Tag {
	if pref == "" {
		return language.English
	}
	tag, err := language.Parse(pref)
	if err != nil {
		logger.Warn("Unrecognized locale %q, using English", pref)
		return language.English
	}
	_, idx, _ := matcher.Match(tag)
	return supported[idx]
}

// Labels resolves UI strings for one language.
type Labels struct {
	tag     language.Tag
	catalog map[string]string
}

// For returns the label set for the given locale preference.
func For(pref string) Labels {
	tag := Match(pref)
	if tag == language.Arabic {
		return Labels{tag: tag, catalog: arabic}
	}
	return Labels{tag: tag, catalog: english}
}

// Get returns the label for a key. A key missing from the Arabic catalog
// falls back to English so new strings degrade instead of vanishing.
func (l Labels) Get(key string) string {
	if s, ok := l.catalog[key]; ok {
		return s
	}
	if s, ok := english[key]; ok {
		return s
	}
	return key
}

// RTL reports whether the language renders right to left.
func (l Labels) RTL() bool {
	return l.tag == language.Arabic
}

// Tag returns the resolved language tag.
func (l Labels) Tag() language.Tag {
	return l.tag
}

var english = map[string]string{
	"wizard.title":        "Add a service",
	"step.basics":         "Basics",
	"step.description":    "Description",
	"step.pricing":        "Pricing",
	"step.portfolio":      "Portfolio",
	"step.review":         "Review & publish",
	"button.back":         "Back",
	"button.next":         "Next",
	"button.publish":      "Publish",
	"button.done":         "Done",
	"field.title":         "Service title",
	"field.category":      "Category",
	"field.subcategory":   "Subcategory",
	"field.tags":          "Search tags",
	"field.main_image":    "Main image",
	"field.description":   "Describe your service",
	"field.features":      "What buyers get",
	"field.instructions":  "Instructions for the buyer",
	"field.video":         "Intro video URL",
	"tier.basic":          "Basic",
	"tier.standard":       "Standard",
	"tier.premium":        "Premium",
	"consent.terms":       "I agree to the marketplace terms",
	"consent.originality": "This work and portfolio are my own",
	"banner.restored":     "Draft restored. Re-attach images before publishing.",
	"banner.saved":        "Draft saved",
	"banner.publish_err":  "Publishing failed. Your draft was kept.",
	"completion.title":    "Your service is live!",
}

var arabic = map[string]string{
	"wizard.title":        "أضف خدمة",
	"step.basics":         "الأساسيات",
	"step.description":    "الوصف",
	"step.pricing":        "التسعير",
	"step.portfolio":      "معرض الأعمال",
	"step.review":         "المراجعة والنشر",
	"button.back":         "رجوع",
	"button.next":         "التالي",
	"button.publish":      "نشر",
	"button.done":         "تم",
	"field.title":         "عنوان الخدمة",
	"field.category":      "التصنيف",
	"field.subcategory":   "التصنيف الفرعي",
	"field.tags":          "كلمات البحث",
	"field.main_image":    "الصورة الرئيسية",
	"field.description":   "صف خدمتك",
	"field.features":      "ما يحصل عليه المشتري",
	"field.instructions":  "تعليمات للمشتري",
	"field.video":         "رابط فيديو تعريفي",
	"tier.basic":          "أساسي",
	"tier.standard":       "قياسي",
	"tier.premium":        "مميز",
	"consent.terms":       "أوافق على شروط السوق",
	"consent.originality": "هذا العمل ومعرض الأعمال ملكي",
	"banner.restored":     "تمت استعادة المسودة. أعد إرفاق الصور قبل النشر.",
	"banner.saved":        "تم حفظ المسودة",
	"banner.publish_err":  "فشل النشر. تم الاحتفاظ بمسودتك.",
	"completion.title":    "خدمتك منشورة الآن!",
}
