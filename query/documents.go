package query

// GraphQL documents sent to the backend. These are opaque request
// payloads; the per-country variants differ in field sets, required
// variables and response envelope shape.

const loginDocument = `mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) {
    authToken
    refreshToken
  }
}`

const renewTokenDocument = `mutation RenewToken($authToken: String!, $refreshToken: String!) {
  renewToken(authToken: $authToken, refreshToken: $refreshToken) {
    authToken
    refreshToken
  }
}`

const meDocumentNL = `query Me {
  me {
    ...UserFields
  }
}
fragment UserFields on User {
  id
  connectionsStatus
  firstMeterReadingDate
  lastMeterReadingDate
  advancedPaymentAmount
  treesCount
  hasCO2Compensation
}`

const meDocumentBE = `query Me($siteReference: String) {
  me {
    ...UserFields
  }
}
fragment UserFields on User {
  id
  email
  countryCode
  advancedPaymentAmount(siteReference: $siteReference)
  treesCount
  hasInviteLink
  hasCO2Compensation
  notification
  createdAt
  deliverySites {
    reference
  }
}`

const monthSummaryDocumentNL = `query MonthSummary {
  monthSummary {
    actualCostsUntilLastMeterReadingDate
    expectedCostsUntilLastMeterReadingDate
    expectedCosts
    lastMeterReadingDate
  }
}`

const monthSummaryDocumentBE = `query MonthSummary($siteReference: String!) {
  monthSummary(siteReference: $siteReference) {
    _id
    lastMeterReadingDate
    expectedCostsUntilLastMeterReadingDate
    actualCostsUntilLastMeterReadingDate
    meterReadingDayCompleteness
    gasExcluded
  }
}`

const invoicesDocumentNL = `query Invoices {
  invoices {
    previousPeriodInvoice {
      StartDate
      PeriodDescription
      TotalAmount
    }
    currentPeriodInvoice {
      StartDate
      PeriodDescription
      TotalAmount
    }
    upcomingPeriodInvoice {
      StartDate
      PeriodDescription
      TotalAmount
    }
  }
}`

const invoicesDocumentBE = `query Invoices($siteReference: String!) {
  invoices(siteReference: $siteReference) {
    _id
    previousPeriodInvoice {
      id
      StartDate
      PeriodDescription
      TotalAmount
      __typename
    }
    currentPeriodInvoice {
      id
      StartDate
      PeriodDescription
      TotalAmount
      __typename
    }
    upcomingPeriodInvoice {
      id
      StartDate
      PeriodDescription
      TotalAmount
      __typename
    }
    allInvoices {
      id
      StartDate
      PeriodDescription
      TotalAmount
      __typename
    }
    __typename
  }
}`

const marketPricesDocumentNL = `query MarketPrices($startDate: Date!, $endDate: Date!) {
  marketPricesElectricity(startDate: $startDate, endDate: $endDate) {
    from
    till
    marketPrice
    marketPriceTax
    sourcingMarkupPrice
    energyTaxPrice
  }
  marketPricesGas(startDate: $startDate, endDate: $endDate) {
    from
    till
    marketPrice
    marketPriceTax
    sourcingMarkupPrice
    energyTaxPrice
  }
}`

const marketPricesDocumentBE = `query MarketPrices($date: String!) {
  marketPrices(date: $date) {
    electricityPrices {
      from
      till
      marketPrice
      marketPriceTax
      sourcingMarkupPrice
      energyTaxPrice
      perUnit
    }
    gasPrices {
      from
      till
      marketPrice
      marketPriceTax
      sourcingMarkupPrice
      energyTaxPrice
      perUnit
    }
  }
}`

const customerMarketPricesDocumentNL = `query CustomerMarketPrices($date: String!) {
  customerMarketPrices(date: $date) {
    electricityPrices {
      from
      till
      marketPrice
      marketPriceTax
      sourcingMarkupPrice: consumptionSourcingMarkupPrice
      energyTaxPrice: energyTax
    }
    gasPrices {
      from
      till
      marketPrice
      marketPriceTax
      sourcingMarkupPrice: consumptionSourcingMarkupPrice
      energyTaxPrice: energyTax
    }
  }
}`

const customerMarketPricesDocumentBE = `query MarketPrices($date: String!, $siteReference: String!) {
  customerMarketPrices(date: $date, siteReference: $siteReference) {
    id
    electricityPrices {
      id
      from
      till
      date
      marketPrice
      marketPriceTax
      consumptionSourcingMarkupPrice
      energyTax
      perUnit
    }
    gasPrices {
      id
      from
      till
      date
      marketPrice
      marketPriceTax
      consumptionSourcingMarkupPrice
      energyTax
      perUnit
    }
  }
}`
