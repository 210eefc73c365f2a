package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/geo"
    "github.com/instantfork/instantfork-api/internal/model"
    "github.com/instantfork/instantfork-api/internal/repository"
)

// OwnerHandler bundles repositories for the restaurant back office.  An
// owner account operates exactly one restaurant; every deal and redemption
// route resolves the restaurant from the authenticated owner, never from
// client-supplied IDs.
type OwnerHandler struct {
    Restaurants *repository.RestaurantRepo
    Deals       *repository.DealRepo
    Claims      *repository.ClaimRepo
}

func NewOwnerHandler(r *repository.RestaurantRepo, d *repository.DealRepo, cl *repository.ClaimRepo) *OwnerHandler {
    if r == nil || d == nil || cl == nil {
        panic("nil repository passed to NewOwnerHandler")
    }
    return &OwnerHandler{Restaurants: r, Deals: d, Claims: cl}
}

type restaurantReq struct {
    Name     string  `json:"name"`
    Category string  `json:"category"`
    Address  string  `json:"address"`
    Phone    string  `json:"phone"`
    Website  string  `json:"website"`
    Lat      float64 `json:"lat"`
    Lng      float64 `json:"lng"`
}

func (req *restaurantReq) validate() (string, bool) {
    req.Name = strings.TrimSpace(req.Name)
    req.Category = strings.TrimSpace(req.Category)
    req.Address = strings.TrimSpace(req.Address)
    if req.Name == "" {
        return "name required", false
    }
    if req.Category == "" {
        return "category required", false
    }
    if req.Address == "" {
        return "address required", false
    }
    if !geo.InServiceRegion(geo.Point{Lat: req.Lat, Lng: req.Lng}) {
        return "location outside service region", false
    }
    return "", true
}

func (req *restaurantReq) apply(rest *model.Restaurant) {
    rest.Name = req.Name
    rest.Category = req.Category
    rest.Address = req.Address
    rest.Latitude = req.Lat
    rest.Longitude = req.Lng
    rest.Phone = nil
    if t := strings.TrimSpace(req.Phone); t != "" {
        rest.Phone = &t
    }
    rest.Website = nil
    if t := strings.TrimSpace(req.Website); t != "" {
        rest.Website = &t
    }
}

// CreateRestaurant registers the owner's restaurant.  A second create for
// the same owner is rejected with 409.
func (h *OwnerHandler) CreateRestaurant(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req restaurantReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg, ok := req.validate(); !ok {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
    }

    rest := model.Restaurant{OwnerID: uid}
    req.apply(&rest)

    ctx := c.Request().Context()
    id, err := h.Restaurants.Create(ctx, &rest)
    if err != nil {
        if err == repository.ErrRestaurantExists {
            return c.JSON(http.StatusConflict, echo.Map{"error": "owner already has a restaurant"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create restaurant failed"})
    }
    rest.ID = id
    return c.JSON(http.StatusCreated, toPublicRestaurant(rest))
}

// GetMyRestaurant returns the restaurant operated by the caller.
func (h *OwnerHandler) GetMyRestaurant(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    rest, err := h.Restaurants.GetByOwner(c.Request().Context(), uid)
    if err != nil {
        if err == repository.ErrRestaurantNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "no restaurant registered"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toPublicRestaurant(rest))
}

// UpdateMyRestaurant rewrites the restaurant profile of the caller.
func (h *OwnerHandler) UpdateMyRestaurant(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req restaurantReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg, ok := req.validate(); !ok {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
    }

    ctx := c.Request().Context()
    rest, err := h.Restaurants.GetByOwner(ctx, uid)
    if err != nil {
        if err == repository.ErrRestaurantNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "no restaurant registered"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    req.apply(&rest)
    if err := h.Restaurants.Update(ctx, &rest); err != nil {
        switch err {
        case repository.ErrRestaurantNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update restaurant failed"})
    }
    return c.JSON(http.StatusOK, toPublicRestaurant(rest))
}

// myRestaurant resolves the caller's restaurant or writes the error
// response.  Returned bool reports success.
func (h *OwnerHandler) myRestaurant(c echo.Context) (model.Restaurant, bool, error) {
    uid, err := getUserID(c)
    if err != nil {
        return model.Restaurant{}, false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    rest, err := h.Restaurants.GetByOwner(c.Request().Context(), uid)
    if err != nil {
        if err == repository.ErrRestaurantNotFound {
            return model.Restaurant{}, false, c.JSON(http.StatusNotFound, echo.Map{"error": "no restaurant registered"})
        }
        return model.Restaurant{}, false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return rest, true, nil
}
