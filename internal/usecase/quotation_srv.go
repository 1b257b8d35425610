package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/dto/response"
	"fleet-dispatch/internal/i18n"
	"fleet-dispatch/internal/pricing"
	"fleet-dispatch/pkg/apperr"
	"fleet-dispatch/pkg/mailer"
	"fleet-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const quotationValidity = 48 * time.Hour

type QuotationService interface {
	ListQuotations(ctx context.Context, req *request.ListQuotationsRequest) (*response.PaginatedResponse[response.QuotationResponse], error)
	GetQuotation(ctx context.Context, id string) (*response.QuotationResponse, error)
	CreateQuotation(ctx context.Context, req *request.SaveQuotationRequest) (*response.QuotationResponse, error)
	UpdateQuotation(ctx context.Context, id string, req *request.SaveQuotationRequest) (*response.QuotationResponse, error)
	PreviewQuotation(ctx context.Context, req *request.SaveQuotationRequest) (*response.PreviewResponse, error)
	SendQuotation(ctx context.Context, id string, req *request.SendQuotationRequest) (*response.QuotationResponse, error)
	UpdateQuotationStatus(ctx context.Context, id string, req *request.UpdateQuotationStatusRequest) (*response.QuotationResponse, error)
}

type quotationService struct {
	repo   *repository.Repository
	mailer mailer.Sender
	rates  RateProvider
	config *utils.Config
	now    func() time.Time
	log    *zap.Logger
}

func NewQuotationService(repo *repository.Repository, sender mailer.Sender, rates RateProvider, config *utils.Config, log *zap.Logger) QuotationService {
	return &quotationService{
		repo:   repo,
		mailer: sender,
		rates:  rates,
		config: config,
		now:    time.Now,
		log:    log.With(zap.String("service", "quotation")),
	}
}

// composition is a fully priced quotation that has not been stored.
type composition struct {
	items         []entity.QuotationItem
	pkg           *entity.PricingPackage
	promo         *entity.PricingPromotion
	rejection     *pricing.Rejection
	totals        pricing.Totals
	taxPct        float64
	serviceTypeID *uuid.UUID
	currency      string
	display       string
}

// compose prices req. Create, update and preview all go through here so the
// totals cannot drift between them.
func (s *quotationService) compose(ctx context.Context, req *request.SaveQuotationRequest) (*composition, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Quotation validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	c := &composition{currency: pricing.BaseCurrency}
	if req.Currency != "" {
		currency, err := pricing.NormalizeCurrency(req.Currency)
		if err != nil {
			return nil, apperr.BadRequest("%s", err.Error())
		}
		c.currency = currency
	}
	c.display = c.currency
	if req.DisplayCurrency != "" {
		display, err := pricing.NormalizeCurrency(req.DisplayCurrency)
		if err != nil {
			return nil, apperr.BadRequest("%s", err.Error())
		}
		c.display = display
	}

	var rules []entity.TimeBasedRule
	for _, it := range req.Items {
		if it.PickupDate != nil && *it.PickupDate != "" {
			var err error
			if rules, err = s.repo.Pricing.FindTimeRules(ctx); err != nil {
				return nil, apperr.Internal(err, "failed to load time based rules")
			}
			break
		}
	}

	serviceTypes := map[uuid.UUID]*entity.ServiceType{}
	for i, in := range req.Items {
		item, err := s.buildItem(ctx, in, i, rules, serviceTypes)
		if err != nil {
			return nil, err
		}
		if c.serviceTypeID == nil && item.ServiceTypeID != nil {
			c.serviceTypeID = item.ServiceTypeID
		}
		c.items = append(c.items, item)
	}

	if c.serviceTypeID == nil {
		id, err := parseOptionalID(req.ServiceTypeID, "service_type_id")
		if err != nil {
			return nil, err
		}
		c.serviceTypeID = id
	}

	packageID, err := parseOptionalID(req.SelectedPackageID, "selected_package_id")
	if err != nil {
		return nil, err
	}
	if packageID != nil {
		pkg, err := s.repo.Pricing.FindPackageByID(ctx, *packageID)
		if err != nil {
			return nil, apperr.Internal(err, "failed to load package")
		}
		if pkg == nil {
			return nil, apperr.NotFound("Package not found")
		}
		c.pkg = pkg
	}

	if c.serviceTypeID == nil && c.pkg == nil {
		return nil, apperr.Validation("%s", i18n.T(localeOf(ctx, req.Language), "quotations.form.errors.serviceTypeRequired", nil))
	}

	lines := pricing.LinesFromItems(c.items)

	if req.PromotionCode != nil && strings.TrimSpace(*req.PromotionCode) != "" {
		promotions, err := s.repo.Pricing.FindPromotionsByCode(ctx, *req.PromotionCode)
		if err != nil {
			return nil, apperr.Internal(err, "failed to load promotions")
		}
		base := pricing.ComputeQuotationTotals(lines, c.pkg, nil, 0, 0).BaseTotal
		c.promo, c.rejection = pricing.ValidatePromotion(*req.PromotionCode, promotions, base, s.now())
	}

	c.taxPct = defaultTax(s.config.Pricing, req.TeamLocation)
	if req.TaxPercentage != nil {
		c.taxPct = *req.TaxPercentage
	}

	c.totals = pricing.ComputeQuotationTotals(lines, c.pkg, c.promo, req.DiscountPercentage, c.taxPct)
	return c, nil
}

func (s *quotationService) buildItem(ctx context.Context, in request.QuotationItemRequest, order int, rules []entity.TimeBasedRule, cache map[uuid.UUID]*entity.ServiceType) (entity.QuotationItem, error) {
	item := entity.QuotationItem{
		Description:     in.Description,
		ServiceTypeName: in.ServiceTypeName,
		VehicleCategory: in.VehicleCategory,
		VehicleType:     in.VehicleType,
		DurationHours:   in.DurationHours,
		ServiceDays:     in.ServiceDays,
		HoursPerDay:     in.HoursPerDay,
		UnitPrice:       in.UnitPrice,
		Quantity:        in.Quantity,
		PickupTime:      in.PickupTime,
		IsServiceItem:   in.IsServiceItem == nil || *in.IsServiceItem,
		SortOrder:       order,
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.ServiceDays < 1 {
		item.ServiceDays = 1
	}

	var err error
	if item.ServiceTypeID, err = parseOptionalID(in.ServiceTypeID, "items.service_type_id"); err != nil {
		return item, err
	}
	if item.PickupDate, err = parseOptionalDate(in.PickupDate, "items.pickup_date"); err != nil {
		return item, err
	}
	categoryID, err := parseOptionalID(in.CategoryID, "items.category_id")
	if err != nil {
		return item, err
	}

	var stored string
	if item.ServiceTypeID != nil {
		st, ok := cache[*item.ServiceTypeID]
		if !ok {
			if st, err = s.repo.ServiceType.FindByID(ctx, *item.ServiceTypeID); err != nil {
				return item, apperr.Internal(err, "failed to load service type")
			}
			if st == nil {
				return item, apperr.NotFound("Service type %s not found", *item.ServiceTypeID)
			}
			cache[*item.ServiceTypeID] = st
		}
		stored = st.Category
		if item.ServiceTypeName == "" {
			item.ServiceTypeName = st.Name
		}
	}
	item.ServiceCategory = pricing.Resolve(stored, item.ServiceTypeName).String()

	if !item.IsServiceItem {
		item.TotalPrice = item.UnitPrice * float64(item.Quantity)
		return item, nil
	}

	if item.PickupDate != nil {
		adj := pricing.EvaluateTimeRules(rules, pricing.Pickup{
			Date:          *item.PickupDate,
			Time:          utils.StringValue(item.PickupTime),
			CategoryID:    categoryID,
			ServiceTypeID: item.ServiceTypeID,
		})
		if adj.RuleID != nil {
			pct := adj.Percentage
			item.TimeBasedAdjustment = &pct
			item.TimeBasedRuleName = adj.RuleName
		}
	}

	item.TotalPrice = pricing.LineFromItem(item).Total()
	return item, nil
}

func (s *quotationService) PreviewQuotation(ctx context.Context, req *request.SaveQuotationRequest) (*response.PreviewResponse, error) {
	c, err := s.compose(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &response.PreviewResponse{
		Items:     response.QuotationItemsToResponse(c.items),
		Totals:    s.displayTotals(ctx, c.totals, c.currency, c.display),
		Package:   response.PackageToResponse(c.pkg),
		Promotion: response.PromotionToResponse(c.promo),
	}
	if c.rejection != nil {
		resp.PromotionMessage = promotionMessage(localeOf(ctx, req.Language), c.rejection, c.currency)
	}
	return resp, nil
}

// displayTotals converts every amount into the display currency before
// formatting.
func (s *quotationService) displayTotals(ctx context.Context, t pricing.Totals, from, to string) response.TotalsResponse {
	if from == to {
		return response.TotalsToResponse(t, to)
	}
	rates := s.rates.Rates(ctx)
	conv := func(v float64) float64 { return rates.Convert(v, from, to) }

	out := t
	out.LineTotals = make([]float64, len(t.LineTotals))
	for i, v := range t.LineTotals {
		out.LineTotals[i] = conv(v)
	}
	out.ServiceTotal = conv(t.ServiceTotal)
	out.PackageTotal = conv(t.PackageTotal)
	out.BaseTotal = conv(t.BaseTotal)
	out.PromotionDiscount = conv(t.PromotionDiscount)
	out.RegularDiscount = conv(t.RegularDiscount)
	out.TotalDiscount = conv(t.TotalDiscount)
	out.Subtotal = conv(t.Subtotal)
	out.TaxAmount = conv(t.TaxAmount)
	out.FinalTotal = conv(t.FinalTotal)
	return response.TotalsToResponse(out, to)
}

// apply writes the request and its pricing onto q.
func (c *composition) apply(q *entity.Quotation, req *request.SaveQuotationRequest) {
	q.Title = req.Title
	q.CustomerName = req.CustomerName
	q.CustomerEmail = utils.NormalizeEmail(req.CustomerEmail)
	q.CustomerPhone = req.CustomerPhone
	q.BillingAddress = req.BillingAddress
	q.ServiceTypeID = c.serviceTypeID
	q.VehicleCategory = req.VehicleCategory
	q.VehicleType = req.VehicleType
	q.PickupDate, _ = parseOptionalDate(req.PickupDate, "pickup_date")
	q.PickupTime = req.PickupTime
	q.DurationHours = req.DurationHours
	q.ServiceDays = req.ServiceDays
	q.HoursPerDay = req.HoursPerDay
	q.PassengerCount = req.PassengerCount
	q.MerchantNotes = req.MerchantNotes
	q.CustomerNotes = req.CustomerNotes
	q.GeneralNotes = req.GeneralNotes

	q.Amount = c.totals.BaseTotal
	q.DiscountPercentage = req.DiscountPercentage
	q.TaxPercentage = c.taxPct
	q.TotalAmount = c.totals.FinalTotal
	q.Currency = c.currency
	q.DisplayCurrency = c.display

	q.SelectedPackageID, q.SelectedPackageName, q.SelectedPackageDescription, q.SelectedPackagePrice = nil, nil, nil, nil
	if c.pkg != nil {
		id, name, price := c.pkg.ID, c.pkg.Name, c.pkg.BasePrice
		q.SelectedPackageID = &id
		q.SelectedPackageName = &name
		q.SelectedPackageDescription = c.pkg.Description
		q.SelectedPackagePrice = &price
	}

	q.SelectedPromotionID, q.SelectedPromotionName, q.SelectedPromotionDescription, q.SelectedPromotionCode = nil, nil, nil, nil
	q.PromotionDiscount = c.totals.PromotionDiscount
	if c.promo != nil {
		id, name, code := c.promo.ID, c.promo.Name, c.promo.Code
		q.SelectedPromotionID = &id
		q.SelectedPromotionName = &name
		q.SelectedPromotionDescription = c.promo.Description
		q.SelectedPromotionCode = &code
	}

	q.TeamLocation = req.TeamLocation
	if q.TeamLocation == "" {
		q.TeamLocation = entity.TeamJapan
	}
	q.Items = c.items
}

func (s *quotationService) CreateQuotation(ctx context.Context, req *request.SaveQuotationRequest) (*response.QuotationResponse, error) {
	c, err := s.compose(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.rejectedPromotion(ctx, c, req); err != nil {
		return nil, err
	}

	now := s.now()
	q := &entity.Quotation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Status:     entity.QuotationStatusDraft,
		ExpiryDate: now.Add(quotationValidity),
		MerchantID: utils.ActorFromContext(ctx),
	}
	c.apply(q, req)
	if q.Title == "" {
		q.Title = "Quotation for " + q.CustomerEmail
	}

	if err := s.repo.Quotation.Create(ctx, q); err != nil {
		return nil, apperr.Internal(err, "failed to create quotation")
	}
	if err := s.repo.Quotation.ReplaceItems(ctx, q.ID, q.Items); err != nil {
		return nil, apperr.Internal(err, "failed to save quotation items")
	}
	if c.promo != nil {
		s.countPromotion(ctx, c.promo.ID)
	}

	s.log.Info("Quotation created",
		zap.String("quotation_id", q.ID.String()),
		zap.String("display_id", utils.FormatQuotationID(q.QuoteNumber)),
		zap.Float64("total", q.TotalAmount),
	)

	if req.Send {
		if err := s.deliver(ctx, q, q.CustomerEmail, req.Language, req.BCCEmails); err != nil {
			return nil, err
		}
	}
	return s.toResponse(ctx, q, &c.totals), nil
}

func (s *quotationService) UpdateQuotation(ctx context.Context, id string, req *request.SaveQuotationRequest) (*response.QuotationResponse, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	c, err := s.compose(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.rejectedPromotion(ctx, c, req); err != nil {
		return nil, err
	}

	previousPromo := q.SelectedPromotionID
	c.apply(q, req)
	q.UpdatedAt = s.now()

	if err := s.repo.Quotation.Update(ctx, q); err != nil {
		if isRowMissing(err) {
			return nil, apperr.NotFound("Quotation not found")
		}
		return nil, apperr.Internal(err, "failed to update quotation")
	}
	if err := s.repo.Quotation.ReplaceItems(ctx, q.ID, q.Items); err != nil {
		return nil, apperr.Internal(err, "failed to save quotation items")
	}
	if c.promo != nil && (previousPromo == nil || *previousPromo != c.promo.ID) {
		s.countPromotion(ctx, c.promo.ID)
	}

	s.log.Info("Quotation updated", zap.String("quotation_id", q.ID.String()), zap.Float64("total", q.TotalAmount))

	if req.Send {
		if err := s.deliver(ctx, q, q.CustomerEmail, req.Language, req.BCCEmails); err != nil {
			return nil, err
		}
	}
	return s.toResponse(ctx, q, &c.totals), nil
}

// rejectedPromotion refuses to save a quotation whose promotion code did not
// validate. Preview reports the same rejection without failing.
func (s *quotationService) rejectedPromotion(ctx context.Context, c *composition, req *request.SaveQuotationRequest) error {
	if c.rejection == nil {
		return nil
	}
	msg := promotionMessage(localeOf(ctx, req.Language), c.rejection, c.currency)
	s.log.Warn("Promotion rejected on save",
		zap.String("code", utils.StringValue(req.PromotionCode)),
		zap.String("reason", string(c.rejection.Reason)))
	return apperr.Validation("%s", msg).WithDetails(map[string]string{"promotion_code": msg})
}

func (s *quotationService) countPromotion(ctx context.Context, id uuid.UUID) {
	if err := s.repo.Pricing.IncrementPromotionUsage(ctx, id); err != nil {
		s.log.Warn("Failed to count promotion usage", zap.Error(err), zap.String("promotion_id", id.String()))
	}
}

func (s *quotationService) load(ctx context.Context, id string) (*entity.Quotation, error) {
	qid, err := parseID(id, "quotation id")
	if err != nil {
		return nil, err
	}
	q, err := s.repo.Quotation.FindByID(ctx, qid)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load quotation")
	}
	if q == nil {
		return nil, apperr.NotFound("Quotation not found")
	}
	return q, nil
}

func (s *quotationService) GetQuotation(ctx context.Context, id string) (*response.QuotationResponse, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	totals := storedTotals(q)
	return s.toResponse(ctx, q, &totals), nil
}

// storedTotals recomputes totals from stored items and the package and
// promotion snapshots. The live catalog is never consulted, so repricing or
// deleting a package leaves saved quotations alone.
func storedTotals(q *entity.Quotation) pricing.Totals {
	lines := pricing.LinesFromItems(q.Items)
	pkg := packageSnapshot(q, lines)

	var promo *entity.PricingPromotion
	if q.PromotionDiscount > 0 {
		// the promotion may have expired since; the stored amount still holds
		promo = &entity.PricingPromotion{
			DiscountType:  entity.DiscountTypeFixed,
			DiscountValue: q.PromotionDiscount,
		}
	}
	return pricing.ComputeQuotationTotals(lines, pkg, promo, q.DiscountPercentage, q.TaxPercentage)
}

// packageSnapshot rebuilds the package as it was priced at save time. Rows
// saved before the price column existed fall back to the stored amount less
// the service lines.
func packageSnapshot(q *entity.Quotation, lines []pricing.Line) *entity.PricingPackage {
	if q.SelectedPackageID == nil {
		return nil
	}
	pkg := &entity.PricingPackage{ID: *q.SelectedPackageID, Name: utils.StringValue(q.SelectedPackageName)}
	if q.SelectedPackagePrice != nil {
		pkg.BasePrice = *q.SelectedPackagePrice
		return pkg
	}
	services := pricing.ComputeQuotationTotals(lines, nil, nil, 0, 0).ServiceTotal
	pkg.BasePrice = math.Max(0, q.Amount-services)
	return pkg
}

func (s *quotationService) ListQuotations(ctx context.Context, req *request.ListQuotationsRequest) (*response.PaginatedResponse[response.QuotationResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	filter := entity.QuotationFilter{
		Status: req.Status,
		Search: strings.TrimSpace(req.Search),
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}

	quotations, err := s.repo.Quotation.FindAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list quotations")
	}
	total, err := s.repo.Quotation.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to count quotations")
	}

	locale := localeOf(ctx, "")
	data := response.QuotationsToResponse(quotations)
	for i := range data {
		data[i].StatusLabel = i18n.T(locale, "quotations.status."+string(data[i].Status), nil)
	}
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *quotationService) SendQuotation(ctx context.Context, id string, req *request.SendQuotationRequest) (*response.QuotationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.deliver(ctx, q, req.Email, req.Language, req.BCCEmails); err != nil {
		return nil, err
	}

	totals := storedTotals(q)
	return s.toResponse(ctx, q, &totals), nil
}

// deliver emails the quotation and marks it sent at the same time. It fails
// if either side fails.
func (s *quotationService) deliver(ctx context.Context, q *entity.Quotation, to, language, bcc string) error {
	locale := i18n.Normalize(language)
	if language == "" {
		locale = localeOf(ctx, "")
	}

	msg, err := s.renderEmail(q, to, locale, bcc)
	if err != nil {
		return apperr.Internal(err, "failed to render quotation email")
	}

	sentAt := s.now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.mailer.Send(gctx, msg); err != nil {
			return apperr.Upstream(err, "failed to send quotation email")
		}
		return nil
	})
	g.Go(func() error {
		if err := s.repo.Quotation.UpdateStatus(gctx, q.ID, entity.QuotationStatusSent, &sentAt); err != nil {
			if isRowMissing(err) {
				return apperr.NotFound("Quotation not found")
			}
			return apperr.Internal(err, "failed to mark quotation sent")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Quotation send failed", zap.Error(err), zap.String("quotation_id", q.ID.String()))
		return err
	}

	q.Status = entity.QuotationStatusSent
	q.SentAt = &sentAt
	s.log.Info("Quotation sent",
		zap.String("quotation_id", q.ID.String()),
		zap.String("to", to),
		zap.String("language", locale),
	)
	return nil
}

func (s *quotationService) renderEmail(q *entity.Quotation, to, locale, bcc string) (mailer.Message, error) {
	displayID := utils.FormatQuotationID(q.QuoteNumber)
	name := utils.StringValue(q.CustomerName)
	if name == "" {
		name = q.CustomerEmail
	}

	lines := make([]mailer.QuotationLine, 0, len(q.Items)+1)
	for _, it := range q.Items {
		lines = append(lines, mailer.QuotationLine{
			Description: it.Description,
			Amount:      pricing.FormatAmount(pricing.LineFromItem(it).Total(), q.Currency),
		})
	}
	if q.SelectedPackageName != nil && !hasPackageLine(q.Items) {
		lines = append(lines, mailer.QuotationLine{
			Description: i18n.T(locale, "quotations.pricing.package", nil) + ": " + *q.SelectedPackageName,
		})
	}

	html, err := mailer.RenderQuotation(mailer.QuotationEmail{
		Lang:         locale,
		Heading:      i18n.T(locale, "quotations.email.heading", nil),
		Greeting:     i18n.T(locale, "quotations.email.greeting", i18n.Params{"name": name}),
		Intro:        i18n.T(locale, "quotations.email.intro", nil),
		QuotationID:  displayID,
		Title:        q.Title,
		Lines:        lines,
		TotalLabel:   i18n.T(locale, "quotations.pricing.total", nil),
		Total:        pricing.FormatAmount(q.TotalAmount, q.Currency),
		ValidityNote: i18n.T(locale, "quotations.email.validity", i18n.Params{"date": q.ExpiryDate.Format(time.DateOnly)}),
	})
	if err != nil {
		return mailer.Message{}, err
	}

	recipients := utils.SplitList(bcc)
	recipients = append(recipients, utils.SplitList(s.config.Email.BCC)...)

	return mailer.Message{
		To:      to,
		BCC:     recipients,
		Subject: i18n.T(locale, "quotations.email.subject", i18n.Params{"id": displayID, "company": s.config.Email.FromName}),
		HTML:    html,
	}, nil
}

func hasPackageLine(items []entity.QuotationItem) bool {
	for _, it := range items {
		if !it.IsServiceItem {
			return true
		}
	}
	return false
}

func (s *quotationService) UpdateQuotationStatus(ctx context.Context, id string, req *request.UpdateQuotationStatusRequest) (*response.QuotationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	status := entity.QuotationStatus(req.Status)
	var sentAt *time.Time
	if status == entity.QuotationStatusSent && q.SentAt == nil {
		now := s.now()
		sentAt = &now
	}

	if err := s.repo.Quotation.UpdateStatus(ctx, q.ID, status, sentAt); err != nil {
		if isRowMissing(err) {
			return nil, apperr.NotFound("Quotation not found")
		}
		return nil, apperr.Internal(err, "failed to update quotation status")
	}
	q.Status = status
	if sentAt != nil {
		q.SentAt = sentAt
	}

	s.log.Info("Quotation status changed", zap.String("quotation_id", q.ID.String()), zap.String("status", req.Status))
	totals := storedTotals(q)
	return s.toResponse(ctx, q, &totals), nil
}

func (s *quotationService) toResponse(ctx context.Context, q *entity.Quotation, totals *pricing.Totals) *response.QuotationResponse {
	resp := response.QuotationToResponse(q)
	resp.StatusLabel = i18n.T(localeOf(ctx, ""), "quotations.status."+string(q.Status), nil)
	if totals != nil {
		t := s.displayTotals(ctx, *totals, q.Currency, displayOr(q))
		resp.Totals = &t
	}
	return &resp
}

func displayOr(q *entity.Quotation) string {
	if q.DisplayCurrency != "" {
		return q.DisplayCurrency
	}
	return q.Currency
}
