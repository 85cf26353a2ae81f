package handlers

import (
	"net/http"

	"petsitter/models"
	"petsitter/services/taxonomy"
	"petsitter/utils"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandler struct {
	Taxonomy taxonomy.TaxonomyService
}

func (h *TaxonomyHandler) ListPetTypesHandler(c *gin.Context) {
	types, err := h.Taxonomy.ListPetTypes(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// ListPetTypesForSittersHandler serves the same rows wrapped for the sitter app.
func (h *TaxonomyHandler) ListPetTypesForSittersHandler(c *gin.Context) {
	types, err := h.Taxonomy.ListPetTypes(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"petTypes": types})
}

func (h *TaxonomyHandler) GetPetTypeHandler(c *gin.Context) {
	pt, err := h.Taxonomy.GetPetType(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pt)
}

func (h *TaxonomyHandler) CreatePetTypeHandler(c *gin.Context) {
	var input models.PetType
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	pt, err := h.Taxonomy.CreatePetType(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Pet type added successfully", "data": pt})
}

func (h *TaxonomyHandler) UpdatePetTypeHandler(c *gin.Context) {
	var input models.PetType
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	pt, err := h.Taxonomy.UpdatePetType(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pet type updated successfully", "data": pt})
}

func (h *TaxonomyHandler) DeletePetTypeHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Taxonomy.DeletePetType(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pet type deleted successfully", "data": gin.H{"pet_type_id": id}})
}

func (h *TaxonomyHandler) ListServiceTypesHandler(c *gin.Context) {
	types, err := h.Taxonomy.ListServiceTypes(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceTypes": types})
}

func (h *TaxonomyHandler) GetServiceTypeHandler(c *gin.Context) {
	st, err := h.Taxonomy.GetServiceType(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *TaxonomyHandler) CreateServiceTypeHandler(c *gin.Context) {
	var input models.ServiceType
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	st, err := h.Taxonomy.CreateServiceType(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Service type added successfully", "data": st})
}

func (h *TaxonomyHandler) UpdateServiceTypeHandler(c *gin.Context) {
	var input models.ServiceType
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	st, err := h.Taxonomy.UpdateServiceType(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service type updated successfully", "data": st})
}

func (h *TaxonomyHandler) DeleteServiceTypeHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Taxonomy.DeleteServiceType(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service type deleted successfully", "data": gin.H{"service_type_id": id}})
}
