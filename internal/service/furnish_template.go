package service

import (
	"fmt"
	"time"
)

// EmailTemplateType selects an officer-facing notification template. The set
// is closed; unknown client-supplied ids fall back to the general template.
type EmailTemplateType string

const (
	TemplateOwnerApprovalConfirmation EmailTemplateType = "OWNER_APPROVAL_CONFIRMATION"
	TemplateDriverFurnished           EmailTemplateType = "DRIVER_FURNISHED"
	TemplateHirerFurnished            EmailTemplateType = "HIRER_FURNISHED"
	TemplateRejectedDocsRequired      EmailTemplateType = "REJECTED_DOCS_REQUIRED"
	TemplateRejectedMultipleHirers    EmailTemplateType = "REJECTED_MULTIPLE_HIRERS"
	TemplateRejectedRentalDiscrepancy EmailTemplateType = "REJECTED_RENTAL_DISCREPANCY"
	TemplateRejectedGeneral           EmailTemplateType = "REJECTED_GENERAL"
)

// RejectionTemplateFor maps a client-supplied template id onto the closed
// rejection template set. Unknown ids resolve to the general template.
func RejectionTemplateFor(templateID string) EmailTemplateType {
	switch templateID {
	case string(TemplateRejectedDocsRequired):
		return TemplateRejectedDocsRequired
	case string(TemplateRejectedMultipleHirers):
		return TemplateRejectedMultipleHirers
	case string(TemplateRejectedRentalDiscrepancy):
		return TemplateRejectedRentalDiscrepancy
	default:
		return TemplateRejectedGeneral
	}
}

const (
	templateDateLayout     = "02-01-2006"
	templateDateTimeLayout = "02-01-2006 03.04 PM"
	paymentWindowDays      = 7
)

func GenerateApprovalEmailSubject(noticeNo string) string {
	return "URA Parking Offence Notice " + noticeNo
}

func GenerateRejectionEmailSubject(noticeNo string) string {
	return "URA Parking Offence Notice " + noticeNo + " - Additional Information Required"
}

// GenerateEmailContent renders the body for the given template type from the
// application detail view. Pure function; no module-level state.
func GenerateEmailContent(templateType EmailTemplateType, detail *FurnishApplicationDetail, officerName string) string {
	switch templateType {
	case TemplateOwnerApprovalConfirmation:
		return ownerApprovalConfirmationEmail(detail)
	case TemplateDriverFurnished:
		return driverFurnishedEmail(detail, officerName)
	case TemplateHirerFurnished:
		return hirerFurnishedEmail(detail, officerName)
	case TemplateRejectedDocsRequired:
		return rejectionDocsRequiredEmail(detail, officerName)
	case TemplateRejectedMultipleHirers:
		return rejectionMultipleHirersEmail()
	case TemplateRejectedRentalDiscrepancy:
		return rejectionRentalDiscrepancyEmail()
	default:
		return rejectionGeneralEmail()
	}
}

func ownerApprovalConfirmationEmail(detail *FurnishApplicationDetail) string {
	return fmt.Sprintf(`Website: https://go.gov.sg/ura-pon

%s

Dear %s,

Notice No.              : %s
Vehicle No.             : %s
Date & Time of Offence  : %s
Place of Offence        : %s

Your furnish application has been approved. The furnished person (%s) will be notified separately.

Thank you.

Yours faithfully,
Car Parks Division
Urban Redevelopment Authority
`,
		time.Now().Format(templateDateLayout),
		detail.OwnerName,
		detail.NoticeNo,
		detail.VehicleNo,
		detail.OffenceDate.Format(templateDateTimeLayout),
		detail.PpName,
		detail.FurnishName,
	)
}

func driverFurnishedEmail(detail *FurnishApplicationDetail, officerName string) string {
	dueDate := time.Now().AddDate(0, 0, paymentWindowDays)

	return fmt.Sprintf(`Website: https://go.gov.sg/ura-pon

%s

Dear %s,

Notice No.              : %s
Vehicle No.             : %s
Date & Time of Offence  : %s
Place of Offence        : %s
Amount payable          : $%s by %s

The owner of %s has furnished you as the driver responsible for the above parking offence.

Please pay your parking fine immediately at https://go.gov.sg/ura-pf to avoid paying a court fine of $500 to $2,000 and/or serve a jail sentence of up to 3 months.

Yours faithfully,
%s
Car Parks Division
Urban Redevelopment Authority
`,
		time.Now().Format(templateDateLayout),
		detail.FurnishName,
		detail.NoticeNo,
		detail.VehicleNo,
		detail.OffenceDate.Format(templateDateTimeLayout),
		detail.PpName,
		detail.CompositionAmount.StringFixed(2),
		dueDate.Format(templateDateLayout),
		detail.VehicleNo,
		officerName,
	)
}

// GenerateDriverFurnishedSms renders the SMS sent to a furnished driver.
func GenerateDriverFurnishedSms(detail *FurnishApplicationDetail) string {
	dueDate := time.Now().AddDate(0, 0, paymentWindowDays)

	return fmt.Sprintf(
		"Dear %s, the owner of %s has identified you as the driver responsible for the URA parking offence %s committed on %s at %s. Please pay $%s by %s at any AXS station or at the URA website (log in with Singpass). Do not reply to this SMS",
		detail.FurnishName,
		detail.VehicleNo,
		detail.NoticeNo,
		detail.OffenceDate.Format(templateDateLayout),
		detail.OffenceDate.Format("03.04 PM"),
		detail.CompositionAmount.StringFixed(2),
		dueDate.Format(templateDateLayout),
	)
}

func hirerFurnishedEmail(detail *FurnishApplicationDetail, officerName string) string {
	dueDate := time.Now().AddDate(0, 0, paymentWindowDays)

	return fmt.Sprintf(`Website: https://go.gov.sg/ura-pon

%s

Dear %s,

Notice No.              : %s
Vehicle No.             : %s
Date & Time of Offence  : %s
Place of Offence        : %s
Amount payable          : $%s by %s

The owner of %s has furnished you as the person in charge of the vehicle at the time of the offence.

Please pay your parking fine immediately at https://go.gov.sg/ura-pf to avoid paying a court fine of $500 to $2,000 and/or serve a jail sentence of up to 3 months.

If you were not the driver who had committed the offence, you may provide the details of the driver at https://go.gov.sg/ura-fdd by %s.

Yours faithfully,
%s
Car Parks Division
Urban Redevelopment Authority
`,
		time.Now().Format(templateDateLayout),
		detail.FurnishName,
		detail.NoticeNo,
		detail.VehicleNo,
		detail.OffenceDate.Format(templateDateTimeLayout),
		detail.PpName,
		detail.CompositionAmount.StringFixed(2),
		dueDate.Format(templateDateLayout),
		detail.VehicleNo,
		dueDate.Format(templateDateLayout),
		officerName,
	)
}

func rejectionDocsRequiredEmail(detail *FurnishApplicationDetail, officerName string) string {
	dueDate := time.Now().AddDate(0, 0, paymentWindowDays)

	return fmt.Sprintf(`Website: https://go.gov.sg/ura-pon

%s

Dear %s,

Notice No.              : %s
Vehicle No.             : %s
Date & Time of Offence  : %s
Place of Offence        : %s
Amount payable          : $%s by %s

We refer to your submission of hirer's particulars for the URA parking offence.

Please submit the following document(s) via https://go.gov.sg/ura-fdd by %s:
- Vehicle rental agreement with supporting photo ID
- Vehicle log book with official company stamp and owner's signature
- Valid work permit/employment pass
- Statutory declaration (SD), i.e. 1 SD per parking offence

Alternatively, you can pay the parking fine at any AXS station or the URA website, https://go.gov.sg/ura-pf by %s. Otherwise, you will be liable for the parking offence.

Yours faithfully,
%s
Car Parks Division
Urban Redevelopment Authority
`,
		time.Now().Format(templateDateLayout),
		detail.OwnerName,
		detail.NoticeNo,
		detail.VehicleNo,
		detail.OffenceDate.Format(templateDateTimeLayout),
		detail.PpName,
		detail.CompositionAmount.StringFixed(2),
		dueDate.Format(templateDateLayout),
		dueDate.Format(templateDateLayout),
		dueDate.Format(templateDateLayout),
		officerName,
	)
}

func rejectionMultipleHirersEmail() string {
	dueDate := time.Now().AddDate(0, 0, paymentWindowDays)

	return fmt.Sprintf(`We are unable to accept the particulars as there is an existing hirer identified for the parking offence.

Please submit the following document(s) via https://go.gov.sg/ura-fdd by %s:
- Vehicle rental agreement with supporting photo ID
- Vehicle log book with official company stamp and owner's signature
- Work permit/employment pass
- Statutory declaration (SD)
`,
		dueDate.Format(templateDateLayout),
	)
}

func rejectionRentalDiscrepancyEmail() string {
	return `We are unable to accept the particulars due to the following:
- Offence date is not within the rental period
- Rental agreement shows a different vehicle / hirer
`
}

func rejectionGeneralEmail() string {
	dueDate := time.Now().AddDate(0, 0, paymentWindowDays)

	return fmt.Sprintf(
		"We are unable to accept the particulars. Please pay the parking fine at any AXS station or the URA website, https://go.gov.sg/ura-pf, by %s. Otherwise, you will be liable for the parking offence.",
		dueDate.Format(templateDateLayout),
	)
}
