package i18n

var en = tree{
	"common": tree{
		"success": "Success",
		"error":   "Error",
		"total":   "Total",
	},
	"bookings": tree{
		"messages": tree{
			"notFoundUUID":        "Booking not found with UUID: {id}",
			"notFoundWordPress":   "Booking not found with WordPress ID: {id}",
			"updated":             "Booking {id} updated successfully",
			"rescheduled":         "Booking {id} has been rescheduled successfully",
			"cancelled":           "Booking {id} has been cancelled successfully",
			"deleted":             "Booking {id} has been permanently deleted",
			"assigned":            "Driver and vehicle assigned to booking {id}",
			"unassignRequired":    "Booking ID and Driver ID are required.",
			"unassigned":          "Driver has been successfully unassigned from the booking.",
			"unassignFailed":      "Could not unassign driver. The booking may not be assigned to this driver or does not exist.",
			"syncSuccess":         "Successfully synced {count} bookings ({created} created, {updated} updated)",
			"syncPartial":         "Partially synced {count} bookings ({created} created, {updated} updated) with {errors} errors",
			"syncFailed":          "Sync failed with {errors} errors",
			"syncEmpty":           "No bookings found to sync",
			"created":             "Booking {id} created successfully",
			"requiredFieldsError": "Customer email, service, date and time are required",
		},
	},
	"quotations": tree{
		"status": tree{
			"draft":     "Draft",
			"sent":      "Sent",
			"approved":  "Approved",
			"rejected":  "Rejected",
			"expired":   "Expired",
			"converted": "Converted",
			"paid":      "Paid",
		},
		"form": tree{
			"promotions": tree{
				"invalid":           "Invalid promotion code",
				"notActive":         "This promotion is not yet active",
				"expired":           "This promotion has expired",
				"usageLimitReached": "This promotion has reached its usage limit",
				"minimumAmount":     "Minimum amount required: {amount}",
				"applied":           "Promotion {name} applied",
				"discount":          "Promotion discount",
				"maxDiscount":       "Maximum discount: {amount}",
			},
			"errors": tree{
				"serviceTypeRequired": "Please select a service type before saving",
			},
		},
		"pricing": tree{
			"services": "Services",
			"package":  "Package",
			"discount": "Discount",
			"tax":      "Tax",
			"subtotal": "Subtotal",
			"total":    "Total Amount",
		},
		"email": tree{
			"subject":  "Your quotation {id} from {company}",
			"heading":  "Your Quotation",
			"greeting": "Dear {name},",
			"intro":    "Thank you for your inquiry. Please find the details of your quotation below.",
			"validity": "This quotation is valid until {date}.",
		},
	},
}
