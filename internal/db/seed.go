package db

import (
	"context"
	"fmt"

	"callhelper/internal/models"
)

// DevCases returns the development fixture cases. Four of them share the
// activation keyword so ranking and alternatives can be exercised; the fifth
// excludes it with a negative keyword.
func DevCases() []models.Case {
	const userType = "شركة عمره"
	return []models.Case{
		{
			CaseID:           "TEST-001",
			UserType:         userType,
			Category:         "تفعيل الحساب",
			SubCategory:      "مشاكل تقنية",
			Priority:         models.PriorityHigh,
			MainKeywords:     []string{"تفعيل", "حساب"},
			ExtraKeywords:    []string{"مشكلة", "خطأ"},
			NegativeKeywords: []string{},
			ResponseText:     "**الحل الأول:** لتفعيل الحساب، يرجى التواصل مع قسم الدعم التقني وإرسال نسخة من الترخيص.",
			FallbackText:     "في حال استمرار المشكلة، تواصل مع المشرف المباشر.",
			Why:              "هذا الحل يناسب حالات تفعيل الحساب الأساسية",
		},
		{
			CaseID:           "TEST-002",
			UserType:         userType,
			Category:         "تفعيل النظام",
			SubCategory:      "صلاحيات",
			Priority:         models.PriorityMedium,
			MainKeywords:     []string{"تفعيل", "نظام"},
			ExtraKeywords:    []string{"حساب", "صلاحيات"},
			NegativeKeywords: []string{},
			ResponseText:     "**الحل الثاني:** يمكن تفعيل النظام من خلال لوحة التحكم الرئيسية > الإعدادات > تفعيل الخدمات.",
			FallbackText:     "تواصل مع مدير النظام للحصول على المساعدة.",
			Why:              "هذا الحل مخصص لتفعيل النظام عبر لوحة التحكم",
		},
		{
			CaseID:           "TEST-003",
			UserType:         userType,
			Category:         "تفعيل الخدمة",
			SubCategory:      "اشتراكات",
			Priority:         models.PriorityHigh,
			MainKeywords:     []string{"تفعيل"},
			ExtraKeywords:    []string{"خدمة", "اشتراك", "حساب"},
			NegativeKeywords: []string{},
			ResponseText:     "**الحل الثالث:** لتفعيل الخدمة، تأكد من سداد الرسوم المطلوبة، ثم قم بتفعيل الاشتراك من قائمة الخدمات.",
			FallbackText:     "راجع قسم المحاسبة للتحقق من حالة السداد.",
			Why:              "يستخدم هذا الحل عندما تكون المشكلة متعلقة بالاشتراكات والرسوم",
		},
		{
			CaseID:           "TEST-004",
			UserType:         userType,
			Category:         "مشاكل التفعيل العامة",
			SubCategory:      "استفسارات",
			Priority:         models.PriorityLow,
			MainKeywords:     []string{"مشكلة"},
			ExtraKeywords:    []string{"تفعيل", "حساب", "نظام"},
			NegativeKeywords: []string{},
			ResponseText:     "**الحل الرابع:** للمساعدة في أي مشكلة تفعيل، يمكنك مراجعة دليل المستخدم أو التواصل مع الدعم الفني.",
			FallbackText:     "أرسل تذكرة دعم فني للحصول على المساعدة.",
			Why:              "حل عام لجميع مشاكل التفعيل",
		},
		{
			CaseID:           "TEST-005",
			UserType:         userType,
			Category:         "تعديل البيانات",
			SubCategory:      "معلومات شخصية",
			Priority:         models.PriorityMedium,
			MainKeywords:     []string{"تعديل", "بيانات"},
			ExtraKeywords:    []string{"تغيير", "تحديث"},
			NegativeKeywords: []string{"تفعيل"},
			ResponseText:     "**حل تعديل البيانات:** يمكنك تعديل البيانات من خلال صفحة الملف الشخصي.",
			FallbackText:     "تواصل مع خدمة العملاء لتعديل البيانات.",
			Why:              "هذا الحل خاص بتعديل البيانات فقط وليس التفعيل",
		},
	}
}

// SeedDevCases inserts the development fixture cases. Existing cases are
// skipped unless reset is set, in which case the table is cleared first.
// Returns the number of cases inserted.
func (d *DB) SeedDevCases(ctx context.Context, reset bool) (int, error) {
	if reset {
		if _, err := d.Pool.Exec(ctx, `DELETE FROM cases`); err != nil {
			return 0, fmt.Errorf("failed to clear cases: %w", err)
		}
	}

	query := `
		INSERT INTO cases (case_id, user_type, category, subcategory, priority,
			main_keywords, extra_keywords, negative_keywords,
			response_text, fallback_text, why, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (case_id) DO NOTHING
	`

	inserted := 0
	for _, c := range DevCases() {
		normalizeKeywords(&c)
		result, err := d.Pool.Exec(ctx, query,
			c.CaseID, c.UserType, c.Category, c.SubCategory, c.Priority,
			c.MainKeywords, c.ExtraKeywords, c.NegativeKeywords,
			c.ResponseText, c.FallbackText, c.Why,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed case %s: %w", c.CaseID, err)
		}
		inserted += int(result.RowsAffected())
	}

	return inserted, nil
}
