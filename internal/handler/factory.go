package handler

import (
	"context"
	"net/http"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/naming"
	"github.com/osse101/FactorySim_Go/internal/session"
)

// FactoryHandler serves the facility commands and queries
type FactoryHandler struct {
	sess *session.Session
}

// NewFactoryHandler creates a FactoryHandler
func NewFactoryHandler(sess *session.Session) *FactoryHandler {
	return &FactoryHandler{sess: sess}
}

// nameRef is a user-typed name and the kind it should resolve to
type nameRef struct {
	kind  naming.Kind
	input string
}

// resolve maps a typed name onto a known one. Unknown names pass through
// unchanged so the facility reports them.
func (h *FactoryHandler) resolve(kind naming.Kind, input string) string {
	names := h.sess.Names()
	if names == nil {
		return input
	}
	if canonical, ok := names.Resolve(kind, input); ok {
		return canonical
	}
	return input
}

func (h *FactoryHandler) resolveRecipe(name string, isProduct bool) domain.RecipeRef {
	kind := naming.KindMaterial
	if isProduct {
		kind = naming.KindProduct
	}
	return domain.RecipeFromFlag(h.resolve(kind, name), isProduct)
}

// command runs fn under the session lock and writes its message or failure
func (h *FactoryHandler) command(w http.ResponseWriter, r *http.Request, opName string,
	fn func(ctx context.Context, f *factory.Facility) (string, error), refs ...nameRef) {
	ctx := r.Context()
	var msg string
	err := h.sess.Do(func(f *factory.Facility) error {
		var err error
		msg, err = fn(ctx, f)
		return err
	})
	if err != nil {
		h.respondFailure(w, r, opName, err, refs...)
		return
	}
	logger.FromContext(ctx).Info(LogMsgCommandDone, "command", opName)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: msg})
}

// respondFailure writes a mapped failure. For unknown names it adds close
// matches for every typed name that still does not resolve.
func (h *FactoryHandler) respondFailure(w http.ResponseWriter, r *http.Request, opName string, err error, refs ...nameRef) {
	status, msg := mapServiceError(err)
	logger.FromContext(r.Context()).Info(LogMsgCommandFailed, "command", opName, "status", status, "error", err)

	resp := ErrorResponse{Error: msg}
	if names := h.sess.Names(); names != nil && status == http.StatusNotFound {
		for _, ref := range refs {
			if _, ok := names.Resolve(ref.kind, ref.input); ok {
				continue
			}
			resp.Suggestions = append(resp.Suggestions, names.Suggest(ref.kind, ref.input)...)
		}
	}
	respondJSON(w, status, resp)
}

// view runs a read-only fn under the session lock
func view[T any](sess *session.Session, fn func(f *factory.Facility) T) T {
	var out T
	_ = sess.Do(func(f *factory.Facility) error {
		out = fn(f)
		return nil
	})
	return out
}

// HandleStatus returns the facility status as JSON, or as the text report with ?format=text
func (h *FactoryHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status := view(h.sess, (*factory.Facility).Status)
	if queryOr(r, QueryFormat, "") == FormatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(status.Text()))
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// HandleLines lists the production lines
func (h *FactoryHandler) HandleLines(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, view(h.sess, (*factory.Facility).Lines))
}

// HandleStations lists the crafting stations
func (h *FactoryHandler) HandleStations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, view(h.sess, (*factory.Facility).Stations))
}

// HandleWorkers lists the roster
func (h *FactoryHandler) HandleWorkers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, view(h.sess, (*factory.Facility).Workers))
}

// HandleProducts lists the catalog products
func (h *FactoryHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, view(h.sess, (*factory.Facility).Products))
}

// HandleMaterials lists the catalog materials
func (h *FactoryHandler) HandleMaterials(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, view(h.sess, (*factory.Facility).Materials))
}

// HandleRecipes lists every recipe a crafting station can run
func (h *FactoryHandler) HandleRecipes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, view(h.sess, (*factory.Facility).CraftableRecipes))
}

// HandleOrders lists all orders
func (h *FactoryHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, view(h.sess, (*factory.Facility).Orders))
}

// AdvanceTimeRequest moves the clock
type AdvanceTimeRequest struct {
	Hours int `json:"hours" validate:"gte=0,lte=8760"`
}

// HandleAdvanceTime moves the clock, running due operator passes on the way
func (h *FactoryHandler) HandleAdvanceTime(w http.ResponseWriter, r *http.Request) {
	var req AdvanceTimeRequest
	if !bindJSON(w, r, &req, "Advance time") {
		return
	}
	report, err := h.sess.AdvanceTime(r.Context(), req.Hours)
	if err != nil {
		h.respondFailure(w, r, "advance_time", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// HandleNextDay rolls the day over. A payroll shortfall is reported in the
// body; the day still advances.
func (h *FactoryHandler) HandleNextDay(w http.ResponseWriter, r *http.Request) {
	report, err := h.sess.NextDay(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgCommandFailed, "command", "next_day", "error", err)
	}
	respondJSON(w, http.StatusOK, report)
}

// PurchaseRequest buys material at catalog cost
type PurchaseRequest struct {
	Material string `json:"material" validate:"required,entityname,max=100"`
	Quantity int    `json:"quantity" validate:"lte=1000000"`
}

// HandlePurchase buys material
func (h *FactoryHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if !bindJSON(w, r, &req, "Purchase") {
		return
	}
	name := h.resolve(naming.KindMaterial, req.Material)
	h.command(w, r, "purchase", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.Purchase(ctx, name, req.Quantity)
	}, nameRef{naming.KindMaterial, req.Material})
}

// SellRequest sells product at catalog price
type SellRequest struct {
	Product  string `json:"product" validate:"required,entityname,max=100"`
	Quantity int    `json:"quantity"`
}

// HandleSell sells product
func (h *FactoryHandler) HandleSell(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if !bindJSON(w, r, &req, "Sell") {
		return
	}
	name := h.resolve(naming.KindProduct, req.Product)
	h.command(w, r, "sell", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.Sell(ctx, name, req.Quantity)
	}, nameRef{naming.KindProduct, req.Product})
}

// CreateOrderRequest books an order due a number of days from now
type CreateOrderRequest struct {
	Product      string `json:"product" validate:"required,entityname,max=100"`
	Quantity     int    `json:"quantity" validate:"lte=1000000"`
	DeadlineDays int    `json:"deadline_days" validate:"lte=3650"`
}

// HandleCreateOrder books an order and returns it
func (h *FactoryHandler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !bindJSON(w, r, &req, "Create order") {
		return
	}
	name := h.resolve(naming.KindProduct, req.Product)

	var (
		order domain.Order
		msg   string
	)
	err := h.sess.Do(func(f *factory.Facility) error {
		var err error
		order, msg, err = f.CreateOrder(r.Context(), name, req.Quantity, req.DeadlineDays)
		return err
	})
	if err != nil {
		h.respondFailure(w, r, "create_order", err, nameRef{naming.KindProduct, req.Product})
		return
	}
	respondJSON(w, http.StatusCreated, DataResponse{Message: msg, Data: order})
}

// HireRequest adds a worker to the roster
type HireRequest struct {
	Name       string  `json:"name" validate:"required,entityname,max=100"`
	SkillLevel int     `json:"skill_level"`
	Salary     float64 `json:"salary"`
}

// HandleHire adds a worker
func (h *FactoryHandler) HandleHire(w http.ResponseWriter, r *http.Request) {
	var req HireRequest
	if !bindJSON(w, r, &req, "Hire") {
		return
	}
	h.command(w, r, "hire_worker", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.HireWorker(ctx, req.Name, req.SkillLevel, req.Salary)
	})
}

// AddLineRequest builds a production line
type AddLineRequest struct {
	Capacity int `json:"capacity"`
}

// HandleAddLine builds a production line
func (h *FactoryHandler) HandleAddLine(w http.ResponseWriter, r *http.Request) {
	var req AddLineRequest
	if !bindJSON(w, r, &req, "Add line") {
		return
	}
	h.command(w, r, "add_production_line", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.AddProductionLine(ctx, req.Capacity)
	})
}

// AddStationRequest builds a crafting station
type AddStationRequest struct {
	Name     string `json:"name" validate:"required,entityname,max=100"`
	Capacity int    `json:"capacity"`
}

// HandleAddStation builds a crafting station
func (h *FactoryHandler) HandleAddStation(w http.ResponseWriter, r *http.Request) {
	var req AddStationRequest
	if !bindJSON(w, r, &req, "Add station") {
		return
	}
	h.command(w, r, "add_crafting_station", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.AddCraftingStation(ctx, req.Name, req.Capacity)
	})
}

// AssignWorkerRequest names the worker to move
type AssignWorkerRequest struct {
	Worker string `json:"worker" validate:"required,entityname,max=100"`
}

// HandleAssignWorkerToLine staffs a line; the worker leaves any previous unit
func (h *FactoryHandler) HandleAssignWorkerToLine(w http.ResponseWriter, r *http.Request) {
	h.assignWorker(w, r, "assign_worker_to_line", (*factory.Facility).AssignWorkerToLine)
}

// HandleAssignWorkerToStation staffs a station; the worker leaves any previous unit
func (h *FactoryHandler) HandleAssignWorkerToStation(w http.ResponseWriter, r *http.Request) {
	h.assignWorker(w, r, "assign_worker_to_station", (*factory.Facility).AssignWorkerToStation)
}

func (h *FactoryHandler) assignWorker(w http.ResponseWriter, r *http.Request, opName string,
	assign func(*factory.Facility, context.Context, string, int) (string, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req AssignWorkerRequest
	if !bindJSON(w, r, &req, opName) {
		return
	}
	name := h.resolve(naming.KindWorker, req.Worker)
	h.command(w, r, opName, func(ctx context.Context, f *factory.Facility) (string, error) {
		return assign(f, ctx, name, id)
	}, nameRef{naming.KindWorker, req.Worker})
}

// AssignProductRequest names the product a line should make
type AssignProductRequest struct {
	Product string `json:"product" validate:"required,entityname,max=100"`
}

// HandleAssignProductToLine starts a line on a product, consuming its inputs
func (h *FactoryHandler) HandleAssignProductToLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req AssignProductRequest
	if !bindJSON(w, r, &req, "Assign product") {
		return
	}
	name := h.resolve(naming.KindProduct, req.Product)
	h.command(w, r, "assign_product_to_line", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.AssignProductToLine(ctx, name, id)
	}, nameRef{naming.KindProduct, req.Product})
}

// RecipeTarget names a product or material recipe
type RecipeTarget struct {
	Name      string `json:"name" validate:"required,entityname,max=100"`
	IsProduct bool   `json:"is_product"`
}

func (t RecipeTarget) nameRef() nameRef {
	if t.IsProduct {
		return nameRef{naming.KindProduct, t.Name}
	}
	return nameRef{naming.KindMaterial, t.Name}
}

// HandleAssignRecipeToStation starts a station on a craftable recipe
func (h *FactoryHandler) HandleAssignRecipeToStation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req RecipeTarget
	if !bindJSON(w, r, &req, "Assign recipe") {
		return
	}
	ref := h.resolveRecipe(req.Name, req.IsProduct)
	h.command(w, r, "assign_recipe_to_station", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.AssignRecipeToStation(ctx, ref, id)
	}, req.nameRef())
}
