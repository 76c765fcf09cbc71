package chat

import (
	"callhelper/internal/config"
	"callhelper/internal/matching"
)

// Topic is a canned FAQ answer triggered by any of its keywords.
type Topic struct {
	Name         string
	Keywords     []string
	Response     string
	QuickReplies []string
}

// Solution is a canned answer triggered when its key occurs in a message.
type Solution struct {
	Key  string
	Text string
}

// Quick reply labels the bot both offers and recognizes.
const (
	ReplyRestart      = "العودة للبداية"
	ReplyTalkToAgent  = "تحدث مع موظف"
	ReplyDidItHelp    = "هل ساعدني هذا؟"
	ReplyNeedMoreHelp = "أحتاج مزيد من المساعدة"
	ReplyClarify      = "أحتاج توضيح أكثر"
)

const (
	welcomeText = "مرحباً! أنا رفيق، مساعدك الذكي 🤖\n\n" +
		"أنا هنا لمساعدتك في حل المشاكل التقنية بسرعة.\n\n" +
		"اختر الموضوع اللي تحتاج مساعدة فيه:"

	positiveFeedbackText = "ممتاز! يسعدني إني قدرت أساعدك 😊\n\nفي أي شيء ثاني؟"

	negativeFeedbackText = "عذراً إذا ما كانت الإجابة واضحة.\n\n" +
		"تبغاني:\n• أوضح لك أكثر؟\n• أوصلك بموظف؟\n• نرجع للبداية؟"

	escalationText = "تم تحويل طلبك إلى فريق الدعم، وسيتواصل معك أحد الموظفين في أقرب وقت."

	escalationUnavailableText = "للتواصل مع موظف، يرجى الاتصال بمركز الدعم مباشرة."

	thanksText = "العفو! سعيد بخدمتك، ولا تتردد ترجع لي إذا احتجت شيء."

	noAnswerText = "عذراً، لم أجد إجابة دقيقة في قاعدة البيانات.\n\n" +
		"هل يمكنك إعادة صياغة السؤال أو اختيار موضوع من القائمة؟"

	noInfoText = "لا توجد معلومات متاحة"

	// ErrorText is returned to chat users when a turn fails.
	ErrorText = "حدث خطأ، الرجاء المحاولة مرة أخرى"
)

var (
	positiveFeedbackReplies = []string{"نعم، سؤال آخر", "لا، شكراً"}
	negativeFeedbackReplies = []string{"وضح لي أكثر", ReplyTalkToAgent, ReplyRestart}
	solutionReplies         = []string{ReplyDidItHelp, ReplyClarify, ReplyRestart}
	answerReplies           = []string{ReplyDidItHelp, ReplyNeedMoreHelp, ReplyRestart}
	noAnswerReplies         = []string{ReplyRestart, ReplyTalkToAgent}

	// ErrorReplies accompany ErrorText.
	ErrorReplies = []string{ReplyRestart}
)

// DefaultTopics returns the built-in FAQ topics in match order.
func DefaultTopics() []Topic {
	return []Topic{
		{
			Name:     "التأشيرات",
			Keywords: []string{"تأشيرة", "فيزا", "visa", "تأشير"},
			Response: "أنا هنا لمساعدتك بشأن التأشيرات! \n\n" +
				"يمكنني مساعدتك في:\n• حالة التأشيرة\n• الرفض والموافقة\n• الإلغاء والتعديل\n• مشاكل الطباعة\n\n" +
				"ما المشكلة بالتحديد؟",
			QuickReplies: []string{"التأشيرة تحت المعالجة", "تأشيرة مرفوضة", "إلغاء تأشيرة", "تعديل بيانات"},
		},
		{
			Name:     "الصلاحيات",
			Keywords: []string{"صلاحية", "صلاحيات", "دور", "أدوار", "permissions", "وصول"},
			Response: "حياك الله! مشاكل الصلاحيات شائعة.\n\n" +
				"أغلب المشاكل تكون:\n• المستخدم غير مضاف\n• الدور غير مفعّل\n• الصلاحية ناقصة\n\n" +
				"قبل ما نكمل، تأكد من:\n1. المستخدم مضاف في النظام\n2. الدور الصحيح ممنوح له\n3. الدور يحتوي على الصلاحية المطلوبة\n\n" +
				"هل تأكدت من هذه النقاط؟",
			QuickReplies: []string{"تأكدت والمشكلة باقية", "كيف أتحقق من الأدوار؟", "المستخدم غير ظاهر"},
		},
		{
			Name:     "بيانات الحجاج",
			Keywords: []string{"حاج", "حجاج", "بيانات", "معلومات", "pilgrim", "data"},
			Response: "تمام، بيانات الحجاج...\n\n" +
				"وش المشكلة بالضبط؟\n• بيانات ناقصة؟\n• خطأ في البيانات؟\n• مشكلة في التحديث؟\n• عدم ظهور البيانات؟\n\n" +
				"حدد المشكلة عشان أقدر أساعدك أفضل.",
			QuickReplies: []string{"بيانات ناقصة", "خطأ في البيانات", "لا تظهر البيانات"},
		},
		{
			Name:     "الحصة",
			Keywords: []string{"حصة", "quota", "أعداد", "عدد"},
			Response: "موضوع الحصة والأعداد...\n\n" +
				"عادة المشاكل تكون:\n• الحصة ممتلئة\n• خطأ في احتساب الأعداد\n• تجاوز الحد المسموح\n\n" +
				"وش بالضبط المشكلة اللي واجهتك؟",
			QuickReplies: []string{"الحصة ممتلئة", "خطأ في الأعداد", "كيف أزيد الحصة؟"},
		},
	}
}

// DefaultSolutions returns the built-in common solutions in match order.
func DefaultSolutions() []Solution {
	return []Solution{
		{
			Key: "تحت المعالجة",
			Text: "إذا التأشيرة باقية تحت المعالجة أكثر من 24 ساعة:\n\n" +
				"✓ غالباً تحتاج تدخل القسم التقني\n✓ تأكد من عدم وجود مشاكل في البيانات\n✓ راجع حالة الطلب في النظام\n\n" +
				"هل مر أكثر من 24 ساعة؟",
		},
		{
			Key: "مرفوضة",
			Text: "التأشيرة المرفوضة لها سببين رئيسيين:\n\n" +
				"📌 **سبب الرفض:**\nترجع للجهة المصدرة (وزارة الخارجية/السفارة)\n\n" +
				"💰 **الرسوم:**\n• رسوم التأشيرة: غير مستردة\n• التأمين والخدمات: قابلة للاسترداد الجزئي\n• النسبة تختلف حسب الحالة\n\n" +
				"لا تعطي رقم محدد للعميل!",
		},
		{
			Key: "الصلاحية باقية",
			Text: "لو كل شيء مضبوط والصلاحية ما زالت ما تشتغل:\n\n" +
				"جرّب هالحل:\n1. احذف الدور من المستخدم\n2. أضف الدور من جديد\n3. أحياناً النظام يعلّق ويحتاج refresh\n\n" +
				"غالباً تنحل بهالطريقة. جرب وخبرني!",
		},
		{
			Key: "كيف أتحقق",
			Text: "للتحقق من الأدوار والصلاحيات:\n\n" +
				"1. روح إدارة المستخدمين\n2. اختر المستخدم\n3. شوف الأدوار المفعلة\n4. تأكد الدور الصحيح موجود\n5. اضغط على الدور وشوف الصلاحيات\n\n" +
				"واضحة؟",
		},
	}
}

// TopicsFromConfig converts YAML FAQ entries, falling back to DefaultTopics
// when none are usable. Keywords are normalized.
func TopicsFromConfig(entries []config.FAQTopicConfig) []Topic {
	var topics []Topic
	for _, e := range entries {
		keywords := matching.NormalizeAll(e.Keywords)
		if e.Topic == "" || e.Response == "" || len(keywords) == 0 {
			continue
		}
		topics = append(topics, Topic{
			Name:         e.Topic,
			Keywords:     keywords,
			Response:     e.Response,
			QuickReplies: e.QuickReplies,
		})
	}
	if len(topics) == 0 {
		return DefaultTopics()
	}
	return topics
}

// welcomeReplies lists the topic names as quick replies.
func welcomeReplies(topics []Topic) []string {
	replies := make([]string, 0, len(topics))
	for _, t := range topics {
		replies = append(replies, t.Name)
	}
	return replies
}
