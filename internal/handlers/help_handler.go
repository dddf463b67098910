package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/services"
	"expensetracker/internal/web"
)

// Version is shown on the about page. Overridden at build time with
// -ldflags "-X expensetracker/internal/handlers.Version=...".
var Version = "dev"

type faq struct {
	Question string
	Answer   string
}

type faqSection struct {
	Title string
	Icon  string
	Items []faq
}

var faqSections = []faqSection{
	{
		Title: "Getting started",
		Icon:  "fa-rocket",
		Items: []faq{
			{"How do I create an account?", `Click on the "Register" link on the login page. Fill in your details (username, email, password) and you're ready to start tracking your expenses!`},
			{"How do I log in to my account?", "Enter your username or email and your password on the login page. After five wrong passwords the account is locked for fifteen minutes."},
			{"Is my data secure?", "Passwords are stored as bcrypt hashes and every form is protected against cross-site request forgery. Only you can see your expenses."},
		},
	},
	{
		Title: "Expenses",
		Icon:  "fa-receipt",
		Items: []faq{
			{"How do I add an expense?", `Open the Expenses page and click "Add expense". Fill in the amount, category, date and an optional description.`},
			{"Can I edit or delete an expense?", "Yes! On the Expenses page, find the expense you want to change and use the edit or delete button next to it."},
			{"How do I categorize my expenses?", "Pick one of the default categories or create your own on the Categories page."},
		},
	},
	{
		Title: "Budgets & reports",
		Icon:  "fa-chart-pie",
		Items: []faq{
			{"How do I set a monthly budget?", `Go to your Profile page and look for "Monthly Budget Cap". Enter your desired budget amount and save changes.`},
			{"Can I export my expense data?", "CSV and PDF export links are on the Graphs page. Exports are not available yet."},
			{"How do I view expense reports?", "Visit the Graphs page to see your spending. You can toggle between the weekly and monthly views."},
			{"What do the progress bars mean?", "They show how much of your budget, or of the month's spending, a figure represents."},
		},
	},
	{
		Title: "Account settings",
		Icon:  "fa-user-gear",
		Items: []faq{
			{"How do I change my password?", `Go to your Profile page and open the "Change Password" tab. Enter your current password and the new one.`},
			{"How do I update my email address?", `Edit your email address in the "Profile Information" tab of the Profile page and save your changes.`},
			{"Can I change my preferred currency?", "Yes! Pick your preferred currency symbol on the Profile page. Amounts are not converted, only displayed with the new symbol."},
			{"How do I enable/disable notifications?", "Use the email notifications checkbox in the Profile Information tab."},
		},
	},
}

// HelpHandler handles the help and about pages
type HelpHandler struct {
	userService    services.UserServicer
	supportService services.SupportServicer
	auditService   services.AuditServicer
}

// NewHelpHandler creates a new HelpHandler
func NewHelpHandler(userService services.UserServicer, supportService services.SupportServicer, auditService services.AuditServicer) *HelpHandler {
	return &HelpHandler{userService: userService, supportService: supportService, auditService: auditService}
}

// ContactForm represents the contact support form
type ContactForm struct {
	Subject string `form:"subject" binding:"required,max=200"`
	Message string `form:"message" binding:"required,max=5000"`
}

// Show renders the help page
func (h *HelpHandler) Show(c *gin.Context) {
	h.show(c, http.StatusOK, ContactForm{}, banner{})
}

// Contact sends a message to support
func (h *HelpHandler) Contact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		status, b := errorBanner(c, bindError(err))
		h.show(c, status, form, b)
		return
	}

	msg, err := h.supportService.Submit(c.Request.Context(), userID, form.Subject, form.Message)
	if err != nil {
		status, b := errorBanner(c, err)
		h.show(c, status, form, b)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditCreate, "support_message", msg.ID, c.ClientIP(), map[string]interface{}{
		"subject": msg.Subject,
	})

	h.show(c, http.StatusOK, ContactForm{}, successBanner("Thank you! Your message has been sent. We'll get back to you soon."))
}

func (h *HelpHandler) show(c *gin.Context, status int, form ContactForm, b banner) {
	v, err := loadViewer(c, h.userService)
	if err != nil {
		fail(c, err)
		return
	}

	data := v.page("Help", "help", b)
	data["FAQSections"] = faqSections
	data["Form"] = form
	render(c, status, web.PageHelp, data)
}

// About renders the about page
func (h *HelpHandler) About(c *gin.Context) {
	v, err := loadViewer(c, h.userService)
	if err != nil {
		fail(c, err)
		return
	}

	data := v.page("About us", "about", banner{})
	data["Version"] = Version
	render(c, http.StatusOK, web.PageAbout, data)
}
